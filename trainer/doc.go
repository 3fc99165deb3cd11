// Package trainer provides high-level training orchestration for autoencoder
// networks. It manages epoch loops over image sets, held-out evaluation on
// statistically sufficient subsamples and checkpointing of the best weights.
package trainer
