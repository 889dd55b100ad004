// Package notify broadcasts store changes inside one process.
//
// The engine owns a Broker and publishes one Change per successful write,
// while still holding its write lock, so every Subscription observes
// revisions in order. Each Subscription buffers changes in an unbounded FIFO.
// A slow reader never blocks the writer and never loses a change.
//
// Typical use:
//
//	sub := eng.Subscribe()
//	defer sub.Close()
//	for {
//	    ch, err := sub.Next(ctx)
//	    if err != nil {
//	        return err
//	    }
//	    render(ch.Record)
//	}
package notify
