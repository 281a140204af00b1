package cmd

import (
	"fmt"
	"strconv"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/mattetrop/fluidhcen/boundary"
	"github.com/mattetrop/fluidhcen/comm"
	"github.com/mattetrop/fluidhcen/config"
	"github.com/mattetrop/fluidhcen/driver"
	"github.com/mattetrop/fluidhcen/fields"
	"github.com/mattetrop/fluidhcen/geomfile"
	"github.com/mattetrop/fluidhcen/grid"
	"github.com/mattetrop/fluidhcen/output"
	"github.com/mattetrop/fluidhcen/pressure"
	"github.com/mattetrop/fluidhcen/simerrors"
	"github.com/mattetrop/fluidhcen/turbulence"
)

func runSolver(cmd *cobra.Command, args []string) error {
	if doProfile, _ := cmd.Flags().GetBool("profile"); doProfile {
		defer profile.Start(profile.CPUProfile).Stop()
	}

	cfg, err := config.Load(args[0])
	if err != nil {
		return err
	}

	iProc, jProc := cfg.IProc, cfg.JProc
	if len(args) == 3 {
		iProc, err = strconv.Atoi(args[1])
		if err != nil {
			return &simerrors.ConfigurationError{Reason: fmt.Sprintf("invalid i_proc %q: %v", args[1], err)}
		}
		jProc, err = strconv.Atoi(args[2])
		if err != nil {
			return &simerrors.ConfigurationError{Reason: fmt.Sprintf("invalid j_proc %q: %v", args[2], err)}
		}
	} else if len(args) == 2 {
		return &simerrors.ConfigurationError{Reason: "i_proc and j_proc must both be given, or neither"}
	}

	topo, err := comm.NewTopology(iProc, jProc)
	if err != nil {
		return err
	}
	if len(topo.Contexts) != 1 {
		return &simerrors.ConfigurationError{
			Reason: "multi-rank execution requires a per-rank grid decomposition that cmd does not build yet; run with i_proc=j_proc=1 (comm.Context and its halo exchange/reductions are otherwise fully wired and exercised by the comm package's own tests)",
		}
	}
	rank := topo.Contexts[0]

	g, err := buildGrid(cfg)
	if err != nil {
		return err
	}

	f := fields.New(g.Domain().SizeX, g.Domain().SizeY, cfg.Nu, cfg.Dt, cfg.Tau,
		cfg.XLength, cfg.YLength, cfg.UI, cfg.VI, cfg.PI, cfg.Alpha, cfg.Beta,
		cfg.Gx, cfg.Gy, cfg.TI, cfg.KI, cfg.EI)
	f.EnergyOn = cfg.EnergyEq
	f.TurbulenceOn = cfg.Turbulence

	bc := boundary.NewCollection(g, boundaryParams(cfg))

	var ps pressure.Solver
	if cfg.Solver == "jacobi" {
		ps = pressure.NewJacobiSolver()
	} else {
		ps = pressure.NewSORSolver(cfg.Omega)
	}

	var turb *turbulence.Solver
	if cfg.Turbulence {
		turb = turbulence.NewSolver()
		turb.LowReDamping = cfg.TurbulenceModel == "low-reynolds"
	}

	d := driver.New(g, f, bc, ps, turb, rank, cfg.Gamma, cfg.EpsTol, cfg.IterMax)

	if out, _ := cmd.Flags().GetString("output"); out != "" {
		cfg.OutputPath = out
	}
	var writer *output.VTKWriter
	if cfg.OutputPath != "" {
		writer, err = output.NewVTKWriter(cfg.OutputPath)
		if err != nil {
			return err
		}
	}

	var live *output.LiveView
	graphField := "P"
	if showGraph, _ := cmd.Flags().GetBool("graph"); showGraph {
		live = output.NewLiveView(g, 1024, 1024)
		graphField, _ = cmd.Flags().GetString("graph-field")
	}

	emit := func(step int, t float64) {
		if writer != nil {
			if err := writer.WriteSnapshot(f, g, step, t); err != nil {
				fmt.Printf("warning: %v\n", err)
			}
		}
		if live != nil {
			if err := live.ShowField(f, graphField); err != nil {
				fmt.Printf("warning: %v\n", err)
			}
		}
	}

	return d.Run(cfg.TEnd, &driver.Reporter{}, cfg.OutputEvery, emit)
}

func buildGrid(cfg *config.Config) (*grid.Grid, error) {
	if cfg.GeometryFile == "" {
		return grid.NewLidDrivenCavity(cfg.IMax, cfg.JMax, cfg.XLength, cfg.YLength)
	}
	tags, err := geomfile.ReadPGM(cfg.GeometryFile)
	if err != nil {
		return nil, err
	}
	sizeY := len(tags)
	sizeX := 0
	if sizeY > 0 {
		sizeX = len(tags[0])
	}
	dx, dy := cfg.XLength/float64(sizeX), cfg.YLength/float64(sizeY)
	return grid.NewFromTags(tags, dx, dy, -1)
}

func boundaryParams(cfg *config.Config) boundary.Params {
	p := boundary.Params{
		WallVel:    toTagMap(cfg.BC.WallVelocity),
		WallTemp:   toTagMap(cfg.BC.WallTemp),
		InflowU:    map[grid.Tag]float64{},
		InflowV:    map[grid.Tag]float64{},
		InflowTemp: map[grid.Tag]float64{},
	}
	for tag, vals := range cfg.BC.Inflow {
		t := grid.Tag(tag)
		if u, ok := vals["u"]; ok {
			p.InflowU[t] = u
		}
		if v, ok := vals["v"]; ok {
			p.InflowV[t] = v
		}
		if temp, ok := vals["t"]; ok {
			p.InflowTemp[t] = temp
		}
	}
	return p
}

func toTagMap(m map[int]float64) map[grid.Tag]float64 {
	out := make(map[grid.Tag]float64, len(m))
	for k, v := range m {
		out[grid.Tag(k)] = v
	}
	return out
}
