package stegpng

type decodeConfig struct {
	limits Limits
}

type DecodeOption func(*decodeConfig)

func WithDecodeLimits(l Limits) DecodeOption {
	return func(c *decodeConfig) { c.limits = l }
}

type embedConfig struct {
	limits      Limits
	compression Compression
}

type EmbedOption func(*embedConfig)

// WithPayloadCompression selects the algorithm used to compress the framed
// message. Embed defaults to CompZstd.
func WithPayloadCompression(comp Compression) EmbedOption {
	return func(c *embedConfig) { c.compression = comp }
}

func WithEmbedLimits(l Limits) EmbedOption {
	return func(c *embedConfig) { c.limits = l }
}

type extractConfig struct {
	limits Limits
}

type ExtractOption func(*extractConfig)

func WithExtractLimits(l Limits) ExtractOption {
	return func(c *extractConfig) { c.limits = l }
}
