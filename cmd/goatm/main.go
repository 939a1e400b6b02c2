// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.28
//

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	m "github.com/mkhts/goatm"
)

func main() {
	args, err := parseArgs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err.Error())
		flag.Usage()
		os.Exit(1)
	}
	if err := run(args); err != nil {
		log.Error("failed", "err", err)
		os.Exit(1)
	}
}

type cmdOpt struct {
	model   string
	loc     string
	season  string
	theta   float64
	nOut    int
	outFn   string
	plotFn  string
	cacheFn string
	noCache bool
	debug   bool
}

func parseArgs() (a cmdOpt, err error) {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `
[Usage]
	%s [Options]

Computes the atmosphere density as a function of slant depth for one
zenith angle and writes an X/rho table.

[Options]
`, filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.StringVar(&a.model, "model", "corsika", "Atmosphere model. corsika (layered parameterization) or isa (international standard atmosphere).")
	flag.StringVar(&a.loc, "loc", "USStd", "Location of the CORSIKA parameterization. USStd, BK_USStd, Karlsruhe, SouthPole, PL_SouthPole.")
	flag.StringVar(&a.season, "season", "", "Season for locations parameterized per season, like December or June for SouthPole.")
	flag.Float64Var(&a.theta, "theta", 0.0, "Zenith angle [deg].")
	flag.IntVar(&a.nOut, "n", 100, "Number of rows of the output table.")
	flag.StringVar(&a.outFn, "o", "", "Output table file path. If not specified, output to stdout.")
	flag.StringVar(&a.plotFn, "plot", "", "Write a rho(X) plot to this PNG file.")
	flag.StringVar(&a.cacheFn, "cache", "atm_cache.yaml", "Spline cache file path.")
	flag.BoolVar(&a.noCache, "nocache", false, "Do not read or write the spline cache.")
	flag.BoolVar(&a.debug, "x", false, "Debug information display.")
	flag.Parse()
	if a.theta < 0.0 || a.theta > 90.0 {
		return a, fmt.Errorf("zenith angle must be within [0, 90], got %g", a.theta)
	}
	if a.nOut < 2 {
		return a, fmt.Errorf("table needs at least 2 rows, got %d", a.nOut)
	}
	return a, nil
}

func run(args cmdOpt) error {
	if args.debug {
		log.SetLevel(log.DebugLevel)
	}

	var atm m.Atmosphere
	switch args.model {
	case "corsika":
		c, err := m.NewCorsikaAtm(args.loc, args.season)
		if err != nil {
			return err
		}
		atm = c
	case "isa":
		atm = m.NewIsaAtm()
	default:
		return fmt.Errorf("unknown model %q", args.model)
	}

	var cache *m.SplineCache
	if !args.noCache {
		cache = m.NewSplineCache(args.cacheFn)
	}
	cas, err := m.NewCascadeAtm(atm, m.NewGeometry(), cache)
	if err != nil {
		return err
	}
	if err := cas.SetTheta(args.theta); err != nil {
		return err
	}

	out, err := openOutput(args.outFn)
	if err != nil {
		return err
	}
	defer out.Close()
	printTable(out, args, cas)

	if args.plotFn != "" {
		if err := plotProfile(args, cas); err != nil {
			return fmt.Errorf("plot %s: %w", args.plotFn, err)
		}
	}
	return nil
}

func openOutput(fn string) (io.WriteCloser, error) {
	if fn == "" {
		return &nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(fn)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, nil
}

type nopCloser struct {
	io.Writer
}

func (*nopCloser) Close() error { return nil }

func printTable(w io.Writer, args cmdOpt, cas *m.CascadeAtm) {
	fmt.Fprintf(w, "%% program   : %s\n", filepath.Base(os.Args[0]))
	fmt.Fprintf(w, "%% model     : %s %s %s\n", args.model, args.loc, args.season)
	fmt.Fprintf(w, "%% theta     : %.4f deg (requested %.4f)\n", cas.ThetaDeg(), args.theta)
	fmt.Fprintf(w, "%% x_surf    : %.4f g/cm^2\n", cas.XSurf())
	fmt.Fprintf(w, "%%      X(g/cm^2)     rho(g/cm^3)   1/rho(cm^3/g)\n")
	for i := 0; i < args.nOut; i++ {
		x := float64(i) / float64(args.nOut-1) * cas.XSurf()
		fmt.Fprintf(w, "%15.4f %15.8e %15.8e\n", x, cas.X2Rho(x), cas.RX2Rho(x))
	}
}

func plotProfile(args cmdOpt, cas *m.CascadeAtm) error {
	const n = 1000
	pts := make(plotter.XYs, n)
	for i := range pts {
		x := float64(i) / float64(n-1) * cas.XSurf()
		pts[i].X = x
		pts[i].Y = cas.X2Rho(x)
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s %s %s, theta=%.1f deg", args.model, args.loc, args.season, cas.ThetaDeg())
	p.X.Label.Text = "slant depth X [g/cm^2]"
	p.Y.Label.Text = "rho [g/cm^3]"
	p.Add(line)
	p.Legend.Add("rho(X)", line)
	return p.Save(6*vg.Inch, 4*vg.Inch, args.plotFn)
}
