// Package backdrop renders animated, input-reactive page backgrounds with
// [Ebitengine].
//
// Backdrop provides three visual modes driven by pointer position and scroll
// progress: a grid warp that bulges away from the pointer, scroll-linked
// ribbons, and a drifting 3-D particle field seen through a camera that leans
// toward the pointer.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window, reads
// device input and drives the render loop for you:
//
//	cfg := backdrop.DefaultConfig()
//	cfg.Mode = backdrop.ModeRibbon
//	backdrop.Run(cfg, backdrop.RunConfig{
//		Title: "Ribbons", Width: 1280, Height: 800,
//	})
//
// For full control, embed a [Host] in your own [ebiten.Game] and forward
// Update, Draw and Layout, or wire the pieces yourself:
//
//	tracker := backdrop.NewInputTracker(w, h)
//	queue := &backdrop.FrameQueue{}
//	loop := backdrop.NewLoop(tracker, queue, surface)
//	stop, err := loop.Start(cfg)
//	// once per display refresh:
//	queue.Flush(now)
//	// on teardown:
//	stop()
//
// # Input
//
// An [InputTracker] turns pointer and scroll signals into immutable
// [Sample] snapshots. Pointers are normalized to [-0.5, 0.5] around the
// viewport center with Y up; scroll offsets become progress in [0, 1].
// Hosts without real devices can inject pointer paths and scrolls, and a
// JSON [TestRunner] script can drive them frame by frame.
//
// # Surfaces
//
// A [Loop] hands each tick's [Frame] to a [Surface]. [EbitenSurface] draws
// to the screen, [SVGSurface] writes an SVG document and [RecordingSurface]
// keeps frames for inspection.
//
// # Configuration
//
// Start from [DefaultConfig] or parse JSON with [LoadConfig]. Invalid
// parameters are rejected with a [*ConfigError] that wraps
// [ErrInvalidConfig]; values are never silently clamped. Colors accept any
// CSS color string.
//
// Input events can be bridged into a [Donburi] world via the adapter in
// backdrop/ecs.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package backdrop
