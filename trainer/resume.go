package trainer

import "github.com/neurlang/autoencoder/net/autoencoder"

// Resume loads previously checkpointed weights into the network when the
// resume flag is set
func Resume(net *autoencoder.Autoencoder, resume *bool, dstmodel *string) {
	if resume != nil && *resume && dstmodel != nil && *dstmodel != "" {
		err := net.ReadCompressedWeightsFromFile(*dstmodel)
		if err != nil {
			println(err.Error())
		}
	}
}
