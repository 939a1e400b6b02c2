// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.26
//

package goatm

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

// One persisted profile. Only the knots are stored; the spline is refit
// on load, which keeps the file format independent of the interpolation
// internals.
type splineRecord struct {
	XSurf float64   `yaml:"x_surf"`
	X     []float64 `yaml:"x"`
	Rho   []float64 `yaml:"rho"`
}

// kind|location|season -> formatted zenith angle -> record
type cacheStore map[string]map[string]splineRecord

// Builds a profile for the requested zenith angle on a cache miss.
type BuildFunc func(thetaDeg float64) (*DensityProfile, error)

// Persistent store of density profile splines, keyed by model identity
// and zenith angle. A lookup within TOLDEG of a stored angle is served
// from the store; the profile then carries the stored angle, not the
// requested one.
//
// The file is read at the start of a lookup and rewritten after an
// update. Concurrent processes sharing one file race with the last
// writer winning; the cache assumes single-process use.
type SplineCache struct {
	Path string
}

func NewSplineCache(path string) *SplineCache {
	return &SplineCache{Path: path}
}

func cacheKey(kind, location, season string) string {
	return kind + "|" + location + "|" + season
}

// Angles are stored under their shortest exact decimal representation, so
// a stored angle parses back bit-identical.
func angleKey(thetaDeg float64) string {
	return strconv.FormatFloat(thetaDeg, 'f', -1, 64)
}

// Look up a profile for thetaDeg [deg] under the given model identity.
// Serves the nearest stored angle within TOLDEG if there is one;
// otherwise builds a fresh profile for thetaDeg, stores it and persists
// the store. A failure to persist is returned as an error, since the
// freshly built profile would otherwise be lost.
func (sc *SplineCache) Get(kind, location, season string, thetaDeg float64, build BuildFunc) (*DensityProfile, error) {
	store := sc.load()
	key := cacheKey(kind, location, season)

	if p := sc.lookup(store[key], thetaDeg); p != nil {
		log.Debug("atmosphere cache hit", "key", key, "theta", thetaDeg, "served", p.ThetaDeg)
		return p, nil
	}

	p, err := build(thetaDeg)
	if err != nil {
		return nil, err
	}
	if store[key] == nil {
		store[key] = map[string]splineRecord{}
	}
	store[key][angleKey(thetaDeg)] = splineRecord{XSurf: p.XSurf, X: p.X, Rho: p.Rho}
	if err := sc.save(store); err != nil {
		return nil, err
	}
	return p, nil
}

// Return the profile stored nearest to thetaDeg within TOLDEG, or nil.
// Malformed records are skipped, not surfaced.
func (sc *SplineCache) lookup(angles map[string]splineRecord, thetaDeg float64) *DensityProfile {
	ths := make([]float64, 0, len(angles))
	for s := range angles {
		th, err := strconv.ParseFloat(s, 64)
		if err != nil {
			log.Warn("skipping unparseable cache angle", "angle", s)
			continue
		}
		ths = append(ths, th)
	}
	slices.Sort(ths)
	cl, ok := closest(thetaDeg, ths)
	if !ok || math.Abs(cl-thetaDeg) >= TOLDEG {
		return nil
	}
	rec := angles[angleKey(cl)]
	p, err := newDensityProfile(cl, rec.X, rec.Rho)
	if err != nil || p.XSurf != rec.XSurf {
		log.Warn("discarding malformed cache record", "angle", cl, "err", err)
		return nil
	}
	return p
}

// Load the store from disk. A missing file is an empty store; an
// unreadable or undecodable file is logged and treated as empty.
func (sc *SplineCache) load() cacheStore {
	b, err := os.ReadFile(sc.Path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn("atmosphere cache unreadable, starting fresh", "file", sc.Path, "err", err)
		}
		return cacheStore{}
	}
	var s cacheStore
	if err := yaml.Unmarshal(b, &s); err != nil {
		log.Warn("atmosphere cache corrupt, starting fresh", "file", sc.Path, "err", err)
		return cacheStore{}
	}
	if s == nil {
		s = cacheStore{}
	}
	return s
}

func (sc *SplineCache) save(s cacheStore) error {
	b, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode atmosphere cache: %w", err)
	}
	if err := os.WriteFile(sc.Path, b, 0o644); err != nil {
		return fmt.Errorf("write atmosphere cache %s: %w", sc.Path, err)
	}
	return nil
}
