package canvas

import (
	"encoding/base64"
	"errors"
	"testing"
)

func TestSetGetRoundTrip(t *testing.T) {
	in := []Stroke{
		{
			Points: [][2]float64{{0, 0}, {10, 5.5}, {20, 11}},
			Width:  2,
			Color:  "#ff0000",
		},
		{
			Points: [][2]float64{{3, 4}},
			Width:  1.5,
			Color:  "#000000",
		},
	}

	payload, err := Set(in)
	if err != nil {
		t.Fatalf("Set: %v", err)
	}
	out, err := Get(payload)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("got %d strokes, want %d", len(out), len(in))
	}
	for i := range in {
		if out[i].Width != in[i].Width || out[i].Color != in[i].Color {
			t.Errorf("stroke %d = %+v, want %+v", i, out[i], in[i])
		}
		if len(out[i].Points) != len(in[i].Points) {
			t.Errorf("stroke %d has %d points, want %d", i, len(out[i].Points), len(in[i].Points))
			continue
		}
		for j, p := range in[i].Points {
			if out[i].Points[j] != p {
				t.Errorf("stroke %d point %d = %v, want %v", i, j, out[i].Points[j], p)
			}
		}
	}
}

func TestEmptyPayloadMeansEmptyDrawing(t *testing.T) {
	strokes, err := Get("")
	if err != nil || strokes != nil {
		t.Errorf("Get(\"\") = %v, %v; want nil, nil", strokes, err)
	}
	payload, err := Set(nil)
	if err != nil || payload != "" {
		t.Errorf("Set(nil) = %q, %v; want empty payload", payload, err)
	}
}

func TestGetRejectsBadPayload(t *testing.T) {
	if _, err := Get("not base64!!"); !errors.Is(err, ErrBadPayload) {
		t.Errorf("err = %v, want ErrBadPayload", err)
	}
	notJSON := base64.StdEncoding.EncodeToString([]byte("strokes"))
	if _, err := Get(notJSON); !errors.Is(err, ErrBadPayload) {
		t.Errorf("err = %v, want ErrBadPayload", err)
	}
}
