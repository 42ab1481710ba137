// Package classifier defines the scoring collaborator for attribution runs
// and provides an ONNX Runtime implementation of it.
//
// The attribution core only depends on the Classifier interface: image in,
// ordered class probabilities out. ONNXClassifier wraps a pretrained
// classification model exported to ONNX together with a small JSON metadata
// file describing tensor shapes, class labels, and the expected input size.
//
// Inference errors are returned to the caller untouched; there is no retry
// here. A failed prediction aborts the attribution run that issued it,
// because a silently skipped trial would bias every patch estimate.
package classifier
