package config

import "os"

// readFileIfExists returns (nil, nil) when path does not exist, so
// that an absent sibling boundary-table file is treated as "no
// boundary tables configured" rather than an error.
func readFileIfExists(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}
