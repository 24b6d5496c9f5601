// Package bundle embeds file resources into WebAssembly binaries.
//
// A bundle run takes a payload (a directory, archived to tar on the fly, or
// an existing tar archive), an input wasm binary and an output path. The
// input is rewritten in one streaming pass: every top-level custom section
// with the configured name is dropped, all other bytes are copied unchanged,
// and a new custom section holding the payload is appended.
//
// The output is transactional. It is created only after the payload has been
// prepared and is removed again on any later failure, so the only file ever
// left at the output path is a complete one.
//
//	res, err := bundle.Bundle(bundle.Options{
//	    Files:   "resources/",
//	    Input:   "app.wasm",
//	    Output:  "app.bundled.wasm",
//	    Section: ".enarx.resources",
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("embedded %d bytes\n", res.PayloadSize)
//
// Lower-level building blocks live in wasm (streaming parser) and
// wasm/section (strip and append).
package bundle
