package overlay

import (
	"strings"

	perrors "github.com/matzehuels/padd/pkg/errors"
	"github.com/matzehuels/padd/pkg/style"
)

// Visibility controls whether an overlay is mounted and shown.
type Visibility string

const (
	// None does not mount the overlay at all.
	None Visibility = "none"
	// Hidden mounts the overlay invisibly, keeping its measurements stable.
	Hidden Visibility = "hidden"
	// Visible mounts and shows the overlay.
	Visible Visibility = "visible"
)

// ParseVisibility parses a visibility name. The empty string is Visible.
func ParseVisibility(s string) (Visibility, error) {
	switch v := Visibility(strings.ToLower(strings.TrimSpace(s))); v {
	case "":
		return Visible, nil
	case None, Hidden, Visible:
		return v, nil
	default:
		return "", perrors.New(perrors.ErrCodeInvalidInput, "unknown visibility %q (want none, hidden or visible)", s)
	}
}

// Mounted reports whether the overlay produces nodes.
func (v Visibility) Mounted() bool { return v != None }

// Shown reports whether the overlay is drawn.
func (v Visibility) Shown() bool { return v == Visible || v == "" }

// Next cycles none → hidden → visible → none.
func (v Visibility) Next() Visibility {
	switch v {
	case None:
		return Hidden
	case Hidden:
		return Visible
	default:
		return None
	}
}

func (v Visibility) or(def Visibility) Visibility {
	if v == "" {
		return def
	}
	return v
}

func (v Visibility) class() string {
	if v.Shown() {
		return "padd-visible"
	}
	return "padd-hidden"
}

func (v Visibility) style() style.Style {
	if v.Shown() {
		return style.Style{"opacity": "1", "visibility": "visible"}
	}
	return style.Style{"opacity": "0", "visibility": "hidden"}
}
