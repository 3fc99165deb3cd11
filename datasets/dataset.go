// Package datasets implements the image set type fed to the trainers
package datasets

import "fmt"
import "math/rand"

import "gorgonia.org/tensor"

// ImageSet is a set of grayscale images with pixel values scaled to 0..1,
// one flattened image per sample.
type ImageSet struct {
	Data   [][]float32
	Width  int
	Height int

	// Labels is optional. When present it has one byte per sample and
	// Shuffle keeps it aligned.
	Labels []byte
}

// NewImageSet creates an empty set of the given image geometry
func NewImageSet(width, height int) (*ImageSet, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("NewImageSet: geometry %dx%d must be positive", width, height)
	}
	return &ImageSet{Width: width, Height: height}, nil
}

// Len returns the number of images
func (s *ImageSet) Len() int {
	return len(s.Data)
}

// Append adds one image, which must match the set geometry
func (s *ImageSet) Append(img []float32, label byte) error {
	if len(img) != s.Width*s.Height {
		return fmt.Errorf("Append: image has %d pixels, set wants %d", len(img), s.Width*s.Height)
	}
	s.Data = append(s.Data, img)
	if s.Labels != nil || s.Len() == 1 {
		s.Labels = append(s.Labels, label)
	}
	return nil
}

// Shuffle shuffles the images, keeping labels aligned
func (s *ImageSet) Shuffle() {
	rand.Shuffle(len(s.Data), func(i, j int) {
		s.Data[i], s.Data[j] = s.Data[j], s.Data[i]
		if s.Labels != nil {
			s.Labels[i], s.Labels[j] = s.Labels[j], s.Labels[i]
		}
	})
}

// Split cuts the set into the first n images and the rest. The halves share
// the underlying image storage.
func (s *ImageSet) Split(n int) (head, tail *ImageSet) {
	if n < 0 {
		n = 0
	}
	if n > s.Len() {
		n = s.Len()
	}
	head = &ImageSet{Data: s.Data[:n], Width: s.Width, Height: s.Height}
	tail = &ImageSet{Data: s.Data[n:], Width: s.Width, Height: s.Height}
	if s.Labels != nil {
		head.Labels = s.Labels[:n]
		tail.Labels = s.Labels[n:]
	}
	return
}

// Batch4 copies images lo..hi-1 into an NCHW tensor with one channel
func (s *ImageSet) Batch4(lo, hi int) *tensor.Dense {
	n := hi - lo
	data := make([]float32, n*s.Width*s.Height)
	for i := 0; i < n; i++ {
		copy(data[i*s.Width*s.Height:], s.Data[lo+i])
	}
	return tensor.New(tensor.WithShape(n, 1, s.Height, s.Width), tensor.WithBacking(data))
}

// Batch2 copies images lo..hi-1 into a flattened 2-D tensor
func (s *ImageSet) Batch2(lo, hi int) *tensor.Dense {
	n := hi - lo
	data := make([]float32, n*s.Width*s.Height)
	for i := 0; i < n; i++ {
		copy(data[i*s.Width*s.Height:], s.Data[lo+i])
	}
	return tensor.New(tensor.WithShape(n, s.Width*s.Height), tensor.WithBacking(data))
}

// Corrupt returns a copy of the batch with salt-and-pepper noise: every
// element is forced to 0 or 1 with probability rate. Denoising trainers feed
// the corrupted copy forward and score against the clean batch.
func Corrupt(batch *tensor.Dense, rate float32) *tensor.Dense {
	xs := batch.Data().([]float32)
	out := make([]float32, len(xs))
	copy(out, xs)
	for i := range out {
		if rand.Float32() < rate {
			if rand.Float32() < 0.5 {
				out[i] = 0
			} else {
				out[i] = 1
			}
		}
	}
	shp := batch.Shape()
	outshape := make([]int, len(shp))
	copy(outshape, shp)
	return tensor.New(tensor.WithShape(outshape...), tensor.WithBacking(out))
}
