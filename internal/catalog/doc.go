package catalog

// Package catalog lists the library directories once at startup, parses
// "Artist_Title" filenames, and resolves thumbnails and videos for a title by
// substring match. Lists never change after Load.
