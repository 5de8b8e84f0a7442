package main

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/aretw0/inspekt/pkg/core"
)

// notices are the one-line messages shown for each failure class.
var notices = []struct {
	err error
	msg string
}{
	{core.ErrPermissionDenied, "Permission denied: allow camera and storage access and try again."},
	{core.ErrCaptureFailed, "Could not take the photo. Please try again."},
	{core.ErrInvalidCategory, "Choose a category: GroundCables, AerialCables, WaterPipes or GasPipes."},
	{core.ErrReadOnly, "Storage is read-only; nothing was saved."},
	{core.ErrPersistenceFailed, "Could not save the photo and metadata."},
	{core.ErrNotFound, "No photo found: there are no saved photos to include in the report."},
	{core.ErrRenderFailed, "Could not generate the report."},
	{core.ErrLocationUnavailable, "Location is not available."},
}

// notice turns err into the message for the technician, keeping the
// underlying cause for diagnosis.
func notice(err error) string {
	for _, n := range notices {
		if errors.Is(err, n.err) {
			return n.msg + " (" + err.Error() + ")"
		}
	}
	return "Error: " + err.Error()
}

const sharingUnavailableNotice = "Sharing is not available on this device; the report was saved locally."

func newJSONEncoder(w io.Writer) *json.Encoder {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc
}
