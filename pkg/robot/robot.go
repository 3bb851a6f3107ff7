// Package robot defines the port through which the bridge talks to Pepper.
//
// The NAOqi SDK only exists for Python 2.7, so the real implementation keeps
// a small Choregraphe-python helper process alive and relays to it over HTTP;
// the simulation implementation just logs what the robot would say.
package robot

import "context"

// Speaker makes the robot talk.
type Speaker interface {
	// Connect establishes (or re-establishes) the session to the robot.
	Connect(ctx context.Context) error
	// Say speaks the already-cleaned text.
	Say(ctx context.Context, text string) error
	// Connected reports the last known session state.
	Connected() bool
}
