// Package attendance implements the confirm-attendance flow.
//
// A Controller runs in one of two modes chosen once at startup. Online mode
// writes Attendance Records to the remote store with a create-if-absent
// transaction and follows the remote record count through a live
// subscription. Offline mode keeps a per-identity confirmation flag and an
// approximate total in local storage. A remote write that errors in online
// mode completes that single confirmation through the offline path.
//
// The button behaviour is captured by Next, a pure transition function over
// (mode, state, event); the controller only executes the effects it returns.
package attendance
