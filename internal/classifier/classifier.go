package classifier

import "image"

// Prediction is one class score produced by a classifier.
type Prediction struct {
	Label       string  `json:"label"`
	Probability float64 `json:"probability"`
}

// Classifier scores an image against a fixed set of class labels.
//
// Predict returns at least one entry, sorted by descending probability,
// with probabilities in [0,1]. Implementations must tolerate being called
// repeatedly with different images; whether concurrent calls are safe is up
// to the implementation (the ONNX classifier in this package serializes
// inference internally).
type Classifier interface {
	Predict(img image.Image) ([]Prediction, error)
}

// Top returns the highest-probability prediction from a non-empty slice.
func Top(preds []Prediction) Prediction {
	best := preds[0]
	for _, p := range preds[1:] {
		if p.Probability > best.Probability {
			best = p
		}
	}
	return best
}

// ScoreFor returns the probability assigned to label, and whether the label
// was present at all.
func ScoreFor(preds []Prediction, label string) (float64, bool) {
	for _, p := range preds {
		if p.Label == label {
			return p.Probability, true
		}
	}
	return 0, false
}
