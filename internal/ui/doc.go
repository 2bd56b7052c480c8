package ui

// Package ui contains the Fyne desktop player: the thumbnail carousel, the
// lyrics and video panels, transport controls, the curtain overlay and the
// fetch panel that drives the download, organize and convert services.
// Widgets keep no playback logic of their own; they forward gestures to
// carousel.Carousel, carousel.Curtain and player.Controller and render
// whatever state those report. All UI strings are localized via Localization.
