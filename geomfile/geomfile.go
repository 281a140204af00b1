// Package geomfile reads the PGM pixel maps used as an alternative to
// the built-in lid-driven-cavity generator. No PGM reader library is
// available, so this follows a line-oriented text-file parsing idiom
// (bufio.Reader + fmt.Sscanf/strconv style, as readfiles.readSU2Grid
// does for its own grid format) rather than reaching for an
// image-decoding dependency: the PGM "maxval" header line is the only
// place a PGM reader needs anything beyond bufio and strconv.
package geomfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattetrop/fluidhcen/simerrors"
)

// ReadPGM parses an ASCII (P2) or binary (P5) PGM file into a
// [sizeY][sizeX] row-major tag map (tags[j][i]), ready for
// grid.NewFromTags. Pixel values pass through unchanged as geometry
// tags per the fixed table grid.cellTypeForTag implements.
func ReadPGM(path string) ([][]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &simerrors.IOError{Op: "open geometry file", Err: err}
	}
	defer f.Close()

	r := bufio.NewReader(f)
	magic, err := readToken(r)
	if err != nil {
		return nil, &simerrors.InvalidGeometry{Reason: fmt.Sprintf("reading PGM magic: %v", err)}
	}

	width, err := readIntToken(r)
	if err != nil {
		return nil, &simerrors.InvalidGeometry{Reason: fmt.Sprintf("reading PGM width: %v", err)}
	}
	height, err := readIntToken(r)
	if err != nil {
		return nil, &simerrors.InvalidGeometry{Reason: fmt.Sprintf("reading PGM height: %v", err)}
	}
	maxVal, err := readIntToken(r)
	if err != nil {
		return nil, &simerrors.InvalidGeometry{Reason: fmt.Sprintf("reading PGM maxval: %v", err)}
	}
	if maxVal <= 0 || maxVal > 65535 {
		return nil, &simerrors.InvalidGeometry{Reason: fmt.Sprintf("unsupported PGM maxval %d", maxVal)}
	}

	switch magic {
	case "P2":
		return readASCIISamples(r, width, height)
	case "P5":
		return readBinarySamples(r, width, height, maxVal)
	default:
		return nil, &simerrors.InvalidGeometry{Reason: fmt.Sprintf("unsupported PGM magic %q", magic)}
	}
}

func readASCIISamples(r *bufio.Reader, width, height int) ([][]int, error) {
	tags := make([][]int, height)
	for j := range tags {
		tags[j] = make([]int, width)
	}
	for j := 0; j < height; j++ {
		for i := 0; i < width; i++ {
			v, err := readIntToken(r)
			if err != nil {
				return nil, &simerrors.InvalidGeometry{Reason: fmt.Sprintf("reading pixel (%d,%d): %v", i, j, err), I: i, J: j}
			}
			tags[j][i] = v
		}
	}
	return tags, nil
}

func readBinarySamples(r *bufio.Reader, width, height, maxVal int) ([][]int, error) {
	bytesPerSample := 1
	if maxVal > 255 {
		bytesPerSample = 2
	}
	buf := make([]byte, width*height*bytesPerSample)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, &simerrors.InvalidGeometry{Reason: fmt.Sprintf("reading binary PGM samples: %v", err)}
	}

	tags := make([][]int, height)
	for j := range tags {
		tags[j] = make([]int, width)
	}
	idx := 0
	for j := 0; j < height; j++ {
		for i := 0; i < width; i++ {
			if bytesPerSample == 1 {
				tags[j][i] = int(buf[idx])
				idx++
			} else {
				tags[j][i] = int(buf[idx])<<8 | int(buf[idx+1])
				idx += 2
			}
		}
	}
	return tags, nil
}

// readToken reads the next whitespace-delimited token, skipping '#'
// comment lines, per the PGM plain-header grammar.
func readToken(r *bufio.Reader) (string, error) {
	var sb strings.Builder
	skippingComment := false
	for {
		b, err := r.ReadByte()
		if err != nil {
			if sb.Len() > 0 {
				return sb.String(), nil
			}
			return "", err
		}
		if skippingComment {
			if b == '\n' {
				skippingComment = false
			}
			continue
		}
		if b == '#' {
			skippingComment = true
			continue
		}
		isSpace := b == ' ' || b == '\t' || b == '\n' || b == '\r'
		if isSpace {
			if sb.Len() > 0 {
				return sb.String(), nil
			}
			continue
		}
		sb.WriteByte(b)
	}
}

func readIntToken(r *bufio.Reader) (int, error) {
	tok, err := readToken(r)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(tok)
}
