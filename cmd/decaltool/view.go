package main

import (
	"errors"
	"flag"
	"image"

	"github.com/sqweek/dialog"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/decal-studio/internal/config"
	"github.com/Faultbox/decal-studio/internal/editor"
	"github.com/Faultbox/decal-studio/internal/engine/camera"
	"github.com/Faultbox/decal-studio/internal/engine/debug"
	"github.com/Faultbox/decal-studio/internal/engine/input"
	"github.com/Faultbox/decal-studio/internal/engine/renderer"
	"github.com/Faultbox/decal-studio/internal/engine/scene"
	"github.com/Faultbox/decal-studio/internal/engine/texture"
	"github.com/Faultbox/decal-studio/internal/engine/window"
	"github.com/Faultbox/decal-studio/internal/logger"
)

const windowTitle = "Decal Studio"

// viewer is the interactive editor window.
type viewer struct {
	cfg      *config.Config
	win      *window.Window
	rend     *renderer.Renderer
	scene    *scene.Scene
	cam      *camera.OrbitCamera
	session  *editor.Session
	input    *input.Input
	shots    *debug.ScreenshotCapture
	opened   chan string // Paths chosen in the file dialog
	dialogUp bool
	capture  bool // Save the next frame
}

// runView: decaltool view [-target kind] [texture]
func runView(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	target := fs.String("target", "scene", "Target mesh: plane, box, sphere or scene")
	width := fs.Int("width", 1280, "Window width")
	height := fs.Int("height", 720, "Window height")
	fs.Parse(args)
	if fs.NArg() > 1 {
		return errUsage
	}

	targets, err := buildTargets(*target)
	if err != nil {
		return err
	}

	win, err := window.New(window.Config{Title: windowTitle, Width: *width, Height: *height, VSync: true})
	if err != nil {
		return err
	}
	defer win.Close()

	w, h := win.Size()
	rend, err := renderer.New(renderer.Config{Width: w, Height: h, ClearColor: [3]float32{0.16, 0.17, 0.2}})
	if err != nil {
		return err
	}

	sc, err := scene.New()
	if err != nil {
		return err
	}
	defer sc.Destroy()
	sc.SetTargets(targets)

	cam := camera.NewOrbitCamera(rend.Aspect())
	cam.FitToBounds(collectionBounds(targets))

	v := &viewer{
		cfg:    cfg,
		win:    win,
		rend:   rend,
		scene:  sc,
		cam:    cam,
		input:  input.New(w, h),
		shots:  debug.NewScreenshotCapture("screenshots", "decal"),
		opened: make(chan string, 1),
	}
	v.session = editor.NewSession(targets, cam, sc.Decals(), v.notify, editor.OptionsFromConfig(cfg))

	if fs.NArg() == 1 {
		v.openTexture(fs.Arg(0))
	} else {
		v.notify("Press O or drop an image to pick a decal texture, F12 saves a screenshot")
	}

	logger.Info("viewer started", zap.String("target", *target))
	v.run()
	logger.Info("viewer closed", zap.Int("decals", len(v.session.Decals())))
	return nil
}

func (v *viewer) run() {
	for {
		if v.input.Update() {
			return
		}
		for _, e := range v.input.Events() {
			v.handle(e)
		}

		select {
		case path := <-v.opened:
			v.dialogUp = false
			if path != "" {
				v.openTexture(path)
			}
		default:
		}

		v.rend.Begin()
		v.scene.Render(v.cam.ViewProjection())
		if v.capture {
			v.capture = false
			v.screenshot()
		}
		v.win.SwapBuffers()
	}
}

func (v *viewer) handle(e input.Event) {
	switch e.Type {
	case input.EventResize:
		v.rend.Resize(e.Width, e.Height)
		v.cam.Aspect = v.rend.Aspect()
	case input.EventPointerDown:
		if e.Button == sdl.BUTTON_LEFT {
			v.session.PointerDown(e.Pointer)
		}
	case input.EventPointerMove:
		v.session.PointerMove(e.Pointer)
	case input.EventPointerUp:
		if e.Button == sdl.BUTTON_LEFT {
			v.session.PointerUp(e.Pointer)
		}
	case input.EventWheel:
		v.cam.HandleZoom(e.Wheel)
	case input.EventKey:
		v.session.HandleKey(e.Key, e.Mods)
	case input.EventDrop:
		v.openTexture(e.File)
	case input.EventOpen:
		v.openDialog()
	case input.EventScreenshot:
		v.capture = true
	}
}

func (v *viewer) screenshot() {
	pixels, w, h := v.rend.ReadPixels()
	path, err := v.shots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
	v.notify("Saved " + path)
}

// openDialog shows a native file picker without blocking the frame loop.
// The chosen path is applied on the main thread.
func (v *viewer) openDialog() {
	if v.dialogUp {
		return
	}
	v.dialogUp = true
	go func() {
		path, err := dialog.File().
			Filter("Images", "png", "jpg", "jpeg", "gif", "bmp", "webp", "tga").
			Filter("All Files", "*").
			Title("Open Decal Texture").
			Load()
		if err != nil && !errors.Is(err, dialog.ErrCancelled) {
			logger.Warn("file dialog failed", zap.Error(err))
		}
		v.opened <- path
	}()
}

// openTexture loads an image, caps its resolution and arms placement.
func (v *viewer) openTexture(path string) {
	img, err := texture.Load(path)
	if err != nil {
		logger.Warn("failed to load texture", zap.String("path", path), zap.Error(err))
		v.notify("Could not open " + path)
		return
	}
	img = texture.Downscale(img, v.cfg.Segment.MaxImageDim)
	v.session.SetPendingTexture(img, aspectOf(img))
}

func (v *viewer) notify(msg string) {
	v.win.SetTitle(windowTitle + " - " + msg)
}

func aspectOf(img image.Image) float32 {
	b := img.Bounds()
	if b.Dy() == 0 {
		return 1
	}
	return float32(b.Dx()) / float32(b.Dy())
}
