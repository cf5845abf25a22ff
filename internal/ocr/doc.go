// Package ocr finds existing lettering in a photo with Tesseract so that
// poster text is not placed on top of it.
//
// Tesseract is reached through gosseract/v2 and needs the Tesseract library
// plus language data installed on the host:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// Language codes are Tesseract's own ("eng", "deu", "chi_sim", ...).
// When the language data lives outside the default search path, set
// Tesseract.TessdataPrefix.
//
// Recognized words are turned into detections labelled "text", which the
// placement grid treats like any other obstacle.
package ocr
