package platform

// Package platform contains OS and filesystem glue: the fixed library layout,
// playlist listing via the ytdlp client, post-download file organization, and
// opening the library in the system file manager.
