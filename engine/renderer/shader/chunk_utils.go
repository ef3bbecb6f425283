package shader

// Encoding names the color encoding of a texture or render target.
type Encoding string

const (
	EncodingLinear Encoding = "linear"
	EncodingSRGB   Encoding = "srgb"
	EncodingRGBM   Encoding = "rgbm"
	EncodingRGBE   Encoding = "rgbe"
	EncodingRGBP   Encoding = "rgbp"
)

var decodeFunctions = map[Encoding]string{
	EncodingLinear: "decodeLinear",
	EncodingSRGB:   "decodeGamma",
	EncodingRGBM:   "decodeRGBM",
	EncodingRGBE:   "decodeRGBE",
	EncodingRGBP:   "decodeRGBP",
}

var encodeFunctions = map[Encoding]string{
	EncodingLinear: "encodeLinear",
	EncodingSRGB:   "encodeGamma",
	EncodingRGBM:   "encodeRGBM",
	EncodingRGBE:   "encodeRGBE",
	EncodingRGBP:   "encodeRGBP",
}

// DecodeFunctionName returns the name of the shader function that decodes a texel
// stored with the given encoding into linear color. Unknown encodings decode as gamma.
//
// Parameters:
//   - enc: the texture encoding
//
// Returns:
//   - string: the decode function name defined by the decode chunk
func DecodeFunctionName(enc Encoding) string {
	if fn, ok := decodeFunctions[enc]; ok {
		return fn
	}
	return decodeFunctions[EncodingSRGB]
}

// EncodeFunctionName returns the name of the shader function that encodes linear color
// for a target with the given encoding. Unknown encodings encode as gamma.
//
// Parameters:
//   - enc: the target encoding
//
// Returns:
//   - string: the encode function name defined by the encode chunk
func EncodeFunctionName(enc Encoding) string {
	if fn, ok := encodeFunctions[enc]; ok {
		return fn
	}
	return encodeFunctions[EncodingSRGB]
}
