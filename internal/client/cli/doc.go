// Package cli provides the interactive SmartBrain command-line client.
//
// The REPL supports registering, signing in, showing the signed-in profile
// and running face detection on an image URL. A successful detection bumps
// the profile's entry counter, the same way the web front end does.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
