// Package chat is the state core of the assistant chat widget.
//
// A Store holds one session: the append-only message log, the open flag,
// the typing flag, the active context tag and the unread counter. A
// Controller sits on top of it and is the only thing the presentation layer
// talks to: it validates submissions, guards against a second submission
// while a reply is outstanding, and reports every user action to the host
// through Callbacks.
//
// Nothing in this package is safe for concurrent use. The host must deliver
// every event, including asynchronous replies, on one goroutine (the
// widget's event loop). Replies are never generated here; the host calls
// Controller.ReceiveReply when its reply pipeline produces one. If it never
// does, the session stays in the typing state: there is no timeout.
package chat
