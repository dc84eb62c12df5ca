package screencapture_test

import (
	"encoding/json"
	"screen-capture/internal/screencapture"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewCaptureOptions(t *testing.T) {
	got := screencapture.NewCaptureOptions()
	want := screencapture.CaptureOptions{
		X:            0,
		Y:            0,
		Width:        -1,
		Height:       -1,
		FileName:     "screenshot",
		Asynchronous: false,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestNewCompareOptions(t *testing.T) {
	got := screencapture.NewCompareOptions("www/baseline/home.png")
	want := screencapture.CompareOptions{
		CompareURL:        "www/baseline/home.png",
		ColorTolerance:    0.0,
		PixelTolerance:    0.0,
		WriteActualToFile: false,
		WriteDiffToFile:   false,
		BinaryDiff:        false,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestOptionsWireKeys(t *testing.T) {
	b, err := json.Marshal([]any{
		screencapture.NewCaptureOptions(),
		screencapture.NewCompareOptions("www/baseline/home.png"),
	})
	if err != nil {
		t.Fatal(err)
	}

	want := `[{"x":0,"y":0,"width":-1,"height":-1,"fileName":"screenshot","asynchronous":false},` +
		`{"compareURL":"www/baseline/home.png","colorTolerance":0,"pixelTolerance":0,"writeActualToFile":false,"writeDiffToFile":false,"binaryDiff":false}]`
	if got := string(b); got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}
