/*
Package ports declares the driven-side interfaces of the playback engine:
content storage for explanation payloads and the clock used by the
sequencer's timers. Adapters live under internal/adapters and internal/clock.
*/
package ports
