package screencapture

const DefaultFileName = "screenshot"

// CaptureOptions describes the region, output file and sync mode of a capture.
// Width and Height of -1 mean the full dimension.
type CaptureOptions struct {
	X            int    `json:"x"`
	Y            int    `json:"y"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	FileName     string `json:"fileName"`
	Asynchronous bool   `json:"asynchronous"`
}

func NewCaptureOptions() CaptureOptions {
	return CaptureOptions{
		X:            0,
		Y:            0,
		Width:        -1,
		Height:       -1,
		FileName:     DefaultFileName,
		Asynchronous: false,
	}
}

// CompareOptions describes the reference image and the tolerance and output
// settings of a comparison made on the native side.
type CompareOptions struct {
	CompareURL        string  `json:"compareURL"`
	ColorTolerance    float64 `json:"colorTolerance"`
	PixelTolerance    float64 `json:"pixelTolerance"`
	WriteActualToFile bool    `json:"writeActualToFile"`
	WriteDiffToFile   bool    `json:"writeDiffToFile"`
	BinaryDiff        bool    `json:"binaryDiff"`
}

func NewCompareOptions(compareURL string) CompareOptions {
	return CompareOptions{
		CompareURL: compareURL,
	}
}
