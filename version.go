package chalkboard

// Version is the library version, stamped on releases.
const Version = "0.4.0"
