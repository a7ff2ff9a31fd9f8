package gui

import (
	"fmt"
	"runtime"
	"time"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/famicore/pkg/input"
	"github.com/famicore/pkg/logger"
	"github.com/famicore/pkg/nes"
)

const (
	// The top and bottom 8 scanlines are overscan on a stock NTSC
	// television, so the window shows 256x224.
	cropLines     = 8
	screenWidth   = 256
	screenHeight  = 240 - 2*cropLines
	defaultScale  = 3
	windowTitle   = "famicore"
	audioFreq     = 48000
	audioSamples  = 2048
	frameDuration = time.Second / 60
)

// GUI drives the core from an SDL2 window: video, audio queue and
// keyboard input.
type GUI struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	audio    sdl.AudioDeviceID

	nes     *nes.NES
	running bool

	nextFrame time.Time
}

// New initializes SDL and creates the window.
func New(core *nes.NES, scale int) (*GUI, error) {
	runtime.LockOSThread()

	if scale <= 0 {
		scale = defaultScale
	}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		return nil, fmt.Errorf("initializing SDL: %w", err)
	}

	window, err := sdl.CreateWindow(
		windowTitle,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(screenWidth*scale), int32(screenHeight*scale),
		sdl.WINDOW_SHOWN,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("creating window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	texture, err := renderer.CreateTexture(
		sdl.PIXELFORMAT_RGB24, sdl.TEXTUREACCESS_STREAMING,
		screenWidth, screenHeight,
	)
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("creating texture: %w", err)
	}

	want := sdl.AudioSpec{
		Freq:     audioFreq,
		Format:   sdl.AUDIO_S16LSB,
		Channels: 1,
		Samples:  audioSamples,
	}
	var have sdl.AudioSpec
	audio, err := sdl.OpenAudioDevice("", false, &want, &have, 0)
	if err != nil {
		logger.LogWarn("audio unavailable: %v", err)
	} else {
		sdl.PauseAudioDevice(audio, false)
	}

	return &GUI{
		window:   window,
		renderer: renderer,
		texture:  texture,
		audio:    audio,
		nes:      core,
	}, nil
}

// Destroy tears down SDL resources.
func (g *GUI) Destroy() {
	if g.audio != 0 {
		sdl.CloseAudioDevice(g.audio)
	}
	g.texture.Destroy()
	g.renderer.Destroy()
	g.window.Destroy()
	sdl.Quit()
}

// Run is the main loop: poll input, run a frame, present it.
func (g *GUI) Run() {
	g.running = true
	g.nextFrame = time.Now()

	for g.running {
		in := g.pollInput()
		if !g.running {
			break
		}

		g.nes.StepFrame(in)
		g.present()
		g.queueAudio()
		g.throttle()
	}
}

func (g *GUI) pollInput() *input.State {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch ev := event.(type) {
		case *sdl.QuitEvent:
			g.running = false
		case *sdl.KeyboardEvent:
			if ev.Type == sdl.KEYDOWN && ev.Keysym.Sym == sdl.K_ESCAPE {
				g.running = false
			}
		}
	}

	keys := sdl.GetKeyboardState()
	var st input.State
	st.Pads[0] = input.Pad{
		A:      keys[sdl.SCANCODE_Z] != 0,
		B:      keys[sdl.SCANCODE_X] != 0,
		Select: keys[sdl.SCANCODE_A] != 0,
		Start:  keys[sdl.SCANCODE_S] != 0,
		Up:     keys[sdl.SCANCODE_UP] != 0,
		Down:   keys[sdl.SCANCODE_DOWN] != 0,
		Left:   keys[sdl.SCANCODE_LEFT] != 0,
		Right:  keys[sdl.SCANCODE_RIGHT] != 0,
	}
	return &st
}

func (g *GUI) present() {
	fb := g.nes.FrameBuffer()
	visible := fb[cropLines*screenWidth*3 : (240-cropLines)*screenWidth*3]

	g.texture.Update(nil, unsafe.Pointer(&visible[0]), screenWidth*3)
	g.renderer.Clear()
	g.renderer.Copy(g.texture, nil, nil)
	g.renderer.Present()
}

func (g *GUI) queueAudio() {
	if g.audio == 0 {
		return
	}
	samples := g.nes.AudioSamples()
	if len(samples) == 0 {
		return
	}
	buf := make([]byte, len(samples)*2)
	for i, s := range samples {
		buf[i*2] = byte(s)
		buf[i*2+1] = byte(uint16(s) >> 8)
	}
	if err := sdl.QueueAudio(g.audio, buf); err != nil {
		logger.LogWarn("audio queue: %v", err)
	}
}

func (g *GUI) throttle() {
	g.nextFrame = g.nextFrame.Add(frameDuration)
	if d := time.Until(g.nextFrame); d > 0 {
		time.Sleep(d)
	} else if d < -time.Second {
		// Too far behind to catch up; resynchronize.
		g.nextFrame = time.Now()
	}
}
