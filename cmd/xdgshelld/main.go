// Command xdgshelld is a reference driver for the xdgshell package: it
// wires the protocol handler to the in-process loop and seat
// implementations and drives a synthetic client through the role,
// configure/ack/commit and popup-grab lifecycle so the handler can be
// exercised without a real Wayland compositor around it.
package main

func main() {
	Execute()
}
