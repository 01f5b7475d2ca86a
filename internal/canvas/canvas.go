package canvas

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Errors returned by payload decoding.
var (
	// ErrBadPayload indicates the payload is not valid base64 JSON.
	ErrBadPayload = errors.New("malformed drawing payload")
)

// Stroke is one pen stroke of an embedded drawing.
type Stroke struct {
	// Points are the stroke's [x, y] coordinates in drawing space.
	Points [][2]float64
	// Width is the pen width.
	Width float64
	// Color is the pen color as a #rrggbb string.
	Color string
}

// Get decodes a drawing payload (base64-wrapped JSON) into strokes. An
// empty payload is an empty drawing; the editor deletes canvas blocks whose
// payload is empty, so Get never sees one in practice but tolerates it.
func Get(payload string) ([]Stroke, error) {
	if payload == "" {
		return nil, nil
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	doc := string(raw)
	if !gjson.Valid(doc) {
		return nil, fmt.Errorf("%w: not JSON", ErrBadPayload)
	}

	var strokes []Stroke
	gjson.Get(doc, "strokes").ForEach(func(_, s gjson.Result) bool {
		stroke := Stroke{
			Width: s.Get("width").Float(),
			Color: s.Get("color").String(),
		}
		s.Get("points").ForEach(func(_, p gjson.Result) bool {
			pts := p.Array()
			if len(pts) == 2 {
				stroke.Points = append(stroke.Points, [2]float64{pts[0].Float(), pts[1].Float()})
			}
			return true
		})
		strokes = append(strokes, stroke)
		return true
	})
	return strokes, nil
}

// Set encodes strokes back into a payload string. Zero strokes yield the
// empty payload, which callers treat as "delete this block".
func Set(strokes []Stroke) (string, error) {
	if len(strokes) == 0 {
		return "", nil
	}

	doc := `{"strokes":[]}`
	var err error
	for i, s := range strokes {
		prefix := fmt.Sprintf("strokes.%d.", i)
		points := make([][]float64, len(s.Points))
		for j, p := range s.Points {
			points[j] = []float64{p[0], p[1]}
		}
		if doc, err = sjson.Set(doc, prefix+"points", points); err != nil {
			return "", fmt.Errorf("encoding stroke %d: %w", i, err)
		}
		if doc, err = sjson.Set(doc, prefix+"width", s.Width); err != nil {
			return "", fmt.Errorf("encoding stroke %d: %w", i, err)
		}
		if doc, err = sjson.Set(doc, prefix+"color", s.Color); err != nil {
			return "", fmt.Errorf("encoding stroke %d: %w", i, err)
		}
	}
	return base64.StdEncoding.EncodeToString([]byte(doc)), nil
}
