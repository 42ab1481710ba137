package classifier

import (
	"encoding/json"
	"fmt"
	"image"
	"math"
	"os"
	"sort"
	"sync"

	"github.com/nfnt/resize"
	ort "github.com/yalue/onnxruntime_go"
)

// Metadata describes the model next to its .onnx file: tensor shapes, the
// class label list, and the square input size the image is resized to.
type Metadata struct {
	InputShape  []int64  `json:"input_shape"`
	OutputShape []int64  `json:"output_shape"`
	Classes     []string `json:"classes"`
	ImageSize   int      `json:"image_size"`
}

// ONNXClassifier scores images with a pretrained ONNX classification model.
//
// The session owns a single input/output tensor pair, so Predict serializes
// inference with a mutex. That makes the classifier safe for the parallel
// attribution workers, at the cost of inference itself not overlapping.
type ONNXClassifier struct {
	mu           sync.Mutex
	session      *ort.AdvancedSession
	metadata     Metadata
	inputTensor  *ort.Tensor[float32]
	outputTensor *ort.Tensor[float32]
}

// NewONNX loads an ONNX classification model and its JSON metadata.
// The caller must Close the classifier to release the runtime resources.
func NewONNX(modelPath, metadataPath string) (*ONNXClassifier, error) {
	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("failed to initialize ONNX environment: %w", err)
	}

	metaFile, err := os.ReadFile(metadataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}

	var metadata Metadata
	if err := json.Unmarshal(metaFile, &metadata); err != nil {
		return nil, fmt.Errorf("failed to parse metadata: %w", err)
	}
	if len(metadata.Classes) == 0 {
		return nil, fmt.Errorf("metadata %s lists no classes", metadataPath)
	}
	if metadata.ImageSize < 1 {
		return nil, fmt.Errorf("metadata %s has invalid image_size %d", metadataPath, metadata.ImageSize)
	}

	inputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(metadata.InputShape...))
	if err != nil {
		return nil, fmt.Errorf("failed to create input tensor: %w", err)
	}

	outputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(metadata.OutputShape...))
	if err != nil {
		inputTensor.Destroy()
		return nil, fmt.Errorf("failed to create output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(modelPath,
		[]string{"input"}, []string{"output"},
		[]ort.ArbitraryTensor{inputTensor}, []ort.ArbitraryTensor{outputTensor},
		nil)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, fmt.Errorf("failed to create ONNX session: %w", err)
	}

	return &ONNXClassifier{
		session:      session,
		metadata:     metadata,
		inputTensor:  inputTensor,
		outputTensor: outputTensor,
	}, nil
}

// Classes returns the model's class labels in output-tensor order.
func (c *ONNXClassifier) Classes() []string {
	return c.metadata.Classes
}

// Predict resizes the image to the model's input size, runs inference, and
// returns softmax probabilities for every class, sorted descending.
func (c *ONNXClassifier) Predict(img image.Image) ([]Prediction, error) {
	inputData := preprocess(img, c.metadata.ImageSize)

	c.mu.Lock()
	copy(c.inputTensor.GetData(), inputData)
	if err := c.session.Run(); err != nil {
		c.mu.Unlock()
		return nil, fmt.Errorf("inference failed: %w", err)
	}
	logits := make([]float32, len(c.outputTensor.GetData()))
	copy(logits, c.outputTensor.GetData())
	c.mu.Unlock()

	if len(logits) < len(c.metadata.Classes) {
		return nil, fmt.Errorf("model produced %d scores for %d classes",
			len(logits), len(c.metadata.Classes))
	}

	probs := softmax(logits[:len(c.metadata.Classes)])
	preds := make([]Prediction, len(c.metadata.Classes))
	for i, label := range c.metadata.Classes {
		preds[i] = Prediction{Label: label, Probability: probs[i]}
	}
	sort.Slice(preds, func(i, j int) bool {
		return preds[i].Probability > preds[j].Probability
	})

	return preds, nil
}

// Close releases the tensors, the session, and the ONNX environment.
func (c *ONNXClassifier) Close() {
	if c.inputTensor != nil {
		c.inputTensor.Destroy()
	}
	if c.outputTensor != nil {
		c.outputTensor.Destroy()
	}
	if c.session != nil {
		c.session.Destroy()
	}
	ort.DestroyEnvironment()
}

// preprocess converts an image to the CHW float32 layout the model expects:
// Lanczos resize to size x size, channels planar (all R, then G, then B),
// values normalized to [0,1].
func preprocess(img image.Image, size int) []float32 {
	resized := resize.Resize(uint(size), uint(size), img, resize.Lanczos3)

	bounds := resized.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	plane := width * height
	inputData := make([]float32, 3*plane)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := resized.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()

			idx := y*width + x
			inputData[idx] = float32(r) / 65535.0
			inputData[plane+idx] = float32(g) / 65535.0
			inputData[2*plane+idx] = float32(b) / 65535.0
		}
	}

	return inputData
}

// softmax maps raw logits to probabilities summing to 1, using the usual
// max-subtraction for numerical stability.
func softmax(logits []float32) []float64 {
	maxLogit := logits[0]
	for _, v := range logits[1:] {
		if v > maxLogit {
			maxLogit = v
		}
	}

	probs := make([]float64, len(logits))
	var sum float64
	for i, v := range logits {
		probs[i] = math.Exp(float64(v - maxLogit))
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}
