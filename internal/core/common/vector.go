package common

import "math"

// Normalized returns an L2-normalized copy of v. A zero vector is returned
// as an all-zero copy so cosine scores against it are 0 rather than NaN.
func Normalized(v []float32) []float32 {
	out := make([]float32, len(v))
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return out
	}
	norm := float32(math.Sqrt(sum))
	for i, x := range v {
		out[i] = x / norm
	}
	return out
}

// Dot is the inner product. Over normalized vectors this is cosine similarity.
func Dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

// Softmax converts scores to a probability distribution. The scale factor
// sharpens the distribution the way CLIP's logit scale does; raw cosine
// similarities are too close together to produce meaningful confidences.
func Softmax(scores []float64, scale float64) []float64 {
	if len(scores) == 0 {
		return nil
	}
	max := scores[0]
	for _, s := range scores[1:] {
		if s > max {
			max = s
		}
	}
	out := make([]float64, len(scores))
	var sum float64
	for i, s := range scores {
		out[i] = math.Exp((s - max) * scale)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}
