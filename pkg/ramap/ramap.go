// Package ramap provides functions for working with Red Alert scenario
// map files.
//
// This package can be used as a library to load, validate and save maps
// programmatically.
//
// Example usage:
//
//	f, _ := os.Open("scg01ea.ini")
//	defer f.Close()
//
//	m, report, err := ramap.Load(f, ramap.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, msg := range report.Messages {
//	    fmt.Println(msg)
//	}
//
//	out, _ := os.Create("scg01ea.mpr")
//	defer out.Close()
//	ramap.Save(out, m, ramap.Options{})
package ramap

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/dyuri/ramap/internal/catalog"
	"github.com/dyuri/ramap/internal/mapfile"
	"github.com/dyuri/ramap/internal/meg"
	"github.com/dyuri/ramap/internal/model"
	"github.com/dyuri/ramap/internal/validate"
)

// Options control loading and saving.
type Options struct {
	// Catalog is the type catalog to resolve names against. A fresh
	// Red Alert catalog is used when nil.
	Catalog *catalog.Catalog
	// Rules is an optional rules.ini override applied to the catalog.
	Rules []byte
	// Logger receives progress output. Nil discards it.
	Logger logrus.FieldLogger
	// Force saves maps that fail validation.
	Force bool
}

// resolve returns the catalog to use and any messages from applying
// the rules override.
func (o Options) resolve() (*catalog.Catalog, []string, error) {
	cat := o.Catalog
	if cat == nil {
		cat = catalog.New()
	}
	if len(o.Rules) == 0 {
		return cat, nil, nil
	}
	msgs, err := cat.LoadRules(o.Rules)
	if err != nil {
		return nil, nil, &Error{Code: ErrInvalidRules.Code, Message: ErrInvalidRules.Message, Cause: err}
	}
	return cat, msgs, nil
}

// LoadReport lists what happened while loading a map.
type LoadReport struct {
	// Messages are the problems found, in file order.
	Messages []string
	// Modified is set when the loaded map no longer matches the file.
	Modified bool
}

// Load reads a map file.
//
// Problems inside the file never fail the load; they are fixed where
// possible and reported in the LoadReport. An error is returned only
// when the input cannot be read or parsed at all.
//
// Example:
//
//	f, _ := os.Open("map.mpr")
//	defer f.Close()
//	m, report, err := Load(f, Options{})
func Load(r io.Reader, opts Options) (*model.Map, *LoadReport, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("read map: %w", err)
	}

	cat, rulesMsgs, err := opts.resolve()
	if err != nil {
		return nil, nil, err
	}

	m, res, err := mapfile.NewReader(cat, opts.Logger).Read(data)
	if err != nil {
		return nil, nil, &Error{Code: ErrInvalidFormat.Code, Message: ErrInvalidFormat.Message, Cause: err}
	}

	report := &LoadReport{Modified: res.Modified}
	report.Messages = append(rulesMsgs, res.Messages...)
	return m, report, nil
}

// Validate checks m. In fix mode the problems that can be repaired are
// repaired in place.
func Validate(m *model.Map, opts Options, fix bool) (validate.Report, error) {
	cat, _, err := opts.resolve()
	if err != nil {
		return validate.Report{}, err
	}
	return validate.Validate(m, cat, false, fix), nil
}

// Save writes m as a map file.
//
// Maps with problems the game cannot load are refused with an error
// wrapping ErrValidation, unless opts.Force is set.
//
// Example:
//
//	out, _ := os.Create("map.mpr")
//	defer out.Close()
//	err := Save(out, m, Options{})
func Save(w io.Writer, m *model.Map, opts Options) error {
	if err := checkSave(m, opts); err != nil {
		return err
	}
	return mapfile.NewWriter(w).Write(m)
}

// Check runs only the checks for problems that keep the game from
// loading m. The map is not changed.
func Check(m *model.Map, opts Options) (validate.Report, error) {
	cat, _, err := opts.resolve()
	if err != nil {
		return validate.Report{}, err
	}
	return validate.Validate(m, cat, true, false), nil
}

func checkSave(m *model.Map, opts Options) error {
	if opts.Force {
		return nil
	}
	report, err := Check(m, opts)
	if err != nil {
		return err
	}
	if !report.Fatal {
		return nil
	}
	return &Error{
		Code:    ErrValidation.Code,
		Message: ErrValidation.Message,
		Cause:   errors.New(strings.Join(report.Messages, "; ")),
	}
}

// WriteMetadata writes the JSON description published next to a map.
func WriteMetadata(w io.Writer, m *model.Map) error {
	return mapfile.WriteMetadata(w, m)
}

// WriteArchive writes m and its metadata into a MEG archive, the way the
// remastered game expects custom maps. name is the archive path of the
// map, for example "data/custom_maps/mymap".
func WriteArchive(w io.Writer, name string, m *model.Map, opts Options) error {
	if err := checkSave(m, opts); err != nil {
		return err
	}
	name = strings.TrimSuffix(name, path.Ext(name))

	var mapData, metaData bytes.Buffer
	if err := mapfile.NewWriter(&mapData).Write(m); err != nil {
		return err
	}
	if err := mapfile.WriteMetadata(&metaData, m); err != nil {
		return err
	}
	return meg.Write(w, []meg.File{
		{Name: name + ".mpr", Data: mapData.Bytes()},
		{Name: name + ".json", Data: metaData.Bytes()},
	})
}

// Common errors
var (
	ErrInvalidFormat = &Error{Code: "invalid_format", Message: "invalid map file"}
	ErrInvalidRules  = &Error{Code: "invalid_rules", Message: "invalid rules file"}
	ErrValidation    = &Error{Code: "validation", Message: "map failed validation"}
)

// Error represents a ramap error
type Error struct {
	Code    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches errors by code, so errors.Is(err, ErrValidation) holds for
// any validation failure.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}
