// Package imaging is the image file boundary of the pixel codec.
//
// It converts between encoded image files and the row-major RGB buffers the
// codec operates on, caches decoded carriers, synthesizes noise carriers, and
// measures how much a hidden-mode encode changed its carrier.
//
// # Pixel Buffers
//
// Buffers are codec.Image values: 3 bytes per pixel (R, G, B), rows stored
// top to bottom with no padding, so len(Pix) == Width*Height*3. Alpha is not
// carried; images with any transparent pixel are rejected with
// ErrUnsupportedImage.
//
// # Output Format
//
// Images are always written as 8-bit truecolor PNG regardless of the file
// extension. Lossy formats such as JPEG would destroy the low-order bits the
// payload lives in. Carriers may be read from any registered format.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. All other functions are
// stateless and can be called concurrently.
//
// # Error Handling
//
// File access and decoding failures wrap ErrIO together with the underlying
// error, so callers can test with errors.Is for either. Files are opened and
// closed within a single call, including on error paths.
package imaging
