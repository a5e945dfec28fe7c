// Package batch applies one mesh operation to many OBJ files in parallel.
package batch

import (
	"fmt"

	"github.com/Faultbox/objkit/pkg/obj"
)

// Processor is one operation over an OBJ text.
type Processor interface {
	Name() string
	Desc() string
	// Execute returns the output documents for text.
	Execute(text string) ([]string, error)
	// Splits reports whether Execute produces segments rather than one
	// rewritten document.
	Splits() bool
}

// Center recenters a mesh on its bounding box.
type Center struct {
	Precision int
}

func (Center) Name() string { return "center" }
func (Center) Desc() string { return "Moves the bounding box center of the mesh to the origin." }
func (Center) Splits() bool { return false }

func (p Center) Execute(text string) ([]string, error) {
	out, err := obj.CenterPrecision(text, p.Precision)
	if err != nil {
		return nil, err
	}
	return []string{out}, nil
}

// Rotate rotates a mesh about X, then Y, then Z. Angles are in degrees.
type Rotate struct {
	X, Y, Z   float64
	Precision int
}

func (Rotate) Name() string { return "rotate" }
func (Rotate) Desc() string { return "Rotates every vertex about the X, Y and Z axes in that order." }
func (Rotate) Splits() bool { return false }

func (p Rotate) Execute(text string) ([]string, error) {
	out, err := obj.RotatePrecision(text, p.X, p.Y, p.Z, p.Precision)
	if err != nil {
		return nil, err
	}
	return []string{out}, nil
}

// Split partitions a mesh into independent documents.
type Split struct {
	Mode obj.Mode
}

func (p Split) Name() string { return "split-" + string(p.Mode) }
func (Split) Splits() bool   { return true }

func (p Split) Desc() string {
	switch p.Mode {
	case obj.ModeGroup:
		return "Writes one file per group."
	case obj.ModeObject:
		return "Writes one file per object."
	case obj.ModeConnected:
		return "Writes one file per set of faces connected through shared vertices."
	default:
		return fmt.Sprintf("Unknown split mode %q.", p.Mode)
	}
}

func (p Split) Execute(text string) ([]string, error) {
	return obj.Split(text, p.Mode)
}
