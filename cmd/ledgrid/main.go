package main

import (
	"flag"
	"image/color"
	"math"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/coreman2200/ledgrid/config"
	"github.com/coreman2200/ledgrid/layout"
	"github.com/coreman2200/ledgrid/led"
	"github.com/coreman2200/ledgrid/matrix"
	"github.com/coreman2200/ledgrid/pixel"
)

func main() {
	var (
		cols       = flag.Int("cols", 1, "tile columns")
		rows       = flag.Int("rows", 1, "tile rows")
		tileW      = flag.Int("tile-width", 8, "tile width in pixels")
		tileH      = flag.Int("tile-height", 8, "tile height in pixels")
		wiring     = flag.String("wiring", "serpentine-tl", "tile wiring pattern")
		brightness = flag.Int("brightness", 128, "global brightness 0..255")
		colorOrder = flag.String("color", "RGB", "wire channel order (e.g. RGB, GRB)")
		gamma      = flag.Float64("gamma", 0, "gamma correction, 0 disables")
		fps        = flag.Int("fps", 30, "target frames per second")
		transport  = flag.String("transport", "screen", "transport: spi | ws2812 | screen | stream | sim")
		spiDev     = flag.String("spi-dev", "/dev/spidev0.0", "SPI port name")
		spiHz      = flag.Int("spi-hz", 2400000, "SPI clock in Hz")
		addr       = flag.String("addr", ":8080", "stream listen address")
		configPath = flag.String("config", "", "optional config.yaml overriding flags")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	var cfg *config.Config
	if *configPath != "" {
		if c, err := config.Load(*configPath); err != nil {
			log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with flags")
		} else {
			cfg = c
		}
	}

	// Effective params: config overrides flags where set.
	eBright, eColor, eGamma, eFPS := *brightness, *colorOrder, *gamma, *fps
	eTransport := *transport
	eSPIDev, eSPIHz, eAddr := *spiDev, *spiHz, *addr
	var lay *layout.Layout
	var err error
	if cfg != nil {
		if cfg.Brightness > 0 {
			eBright = cfg.Brightness
		}
		if cfg.ColorOrder != "" {
			eColor = cfg.ColorOrder
		}
		if cfg.Gamma > 0 {
			eGamma = cfg.Gamma
		}
		if cfg.FPS > 0 {
			eFPS = cfg.FPS
		}
		if cfg.Transport != "" {
			eTransport = cfg.Transport
		}
		if cfg.SPI.Dev != "" {
			eSPIDev = cfg.SPI.Dev
		}
		if cfg.SPI.SpeedHz != 0 {
			eSPIHz = cfg.SPI.SpeedHz
		}
		if cfg.Stream.Addr != "" {
			eAddr = cfg.Stream.Addr
		}
		lay, err = cfg.Layout()
	} else {
		lay, err = layout.Grid(*cols, *rows, *tileW, *tileH, *wiring)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("invalid tile arrangement")
	}

	order, err := pixel.ParseOrder(eColor)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid color order")
	}

	level, err := config.BrightnessLevel(eBright)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid brightness")
	}

	if _, err := host.Init(); err != nil {
		log.Warn().Err(err).Msg("periph host init failed; hardware transports unavailable")
	}

	var srv *http.Server
	var tr matrix.Transport
	switch eTransport {
	case "spi":
		// nrzled handles the chip's channel ordering; keep the pipeline
		// on RGB passthrough for this transport.
		d, err := led.NewSPI(eSPIDev, lay.Pixels(), order.Channels(), physic.Frequency(eSPIHz)*physic.Hertz)
		if err != nil {
			log.Warn().Err(err).Str("dev", eSPIDev).Msg("SPI init failed; falling back to sim")
			tr = &led.Sim{}
		} else {
			tr = d
		}
	case "ws2812":
		tr = openWS2812(eSPIDev, order.Channels(), eSPIHz)
	case "screen":
		tr = led.NewScreen(lay.Pixels())
	case "stream":
		st := led.NewStreamer(lay.Width(), lay.Height())
		mux := http.NewServeMux()
		mux.Handle("/frames", st)
		srv = &http.Server{Addr: eAddr, Handler: mux}
		go func() {
			log.Info().Str("addr", eAddr).Msg("preview server starting")
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatal().Err(err).Msg("preview server crashed")
			}
		}()
		tr = st
	case "sim":
		tr = &led.Sim{}
	default:
		log.Warn().Str("transport", eTransport).Msg("unknown transport; using sim")
		tr = &led.Sim{}
	}

	surf, err := matrix.New(matrix.Options{
		Layout:     lay,
		Order:      order,
		Gamma:      eGamma,
		Brightness: level,
		Transport:  tr,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("display surface init failed")
	}
	log.Info().
		Int("width", lay.Width()).
		Int("height", lay.Height()).
		Int("pixels", lay.Pixels()).
		Str("transport", eTransport).
		Msg("display ready")

	done := make(chan struct{})
	go runDemo(surf, eFPS, done)

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	s := <-ch
	log.Info().Str("signal", s.String()).Msg("shutting down")
	close(done)

	surf.Clear(pixel.Color{})
	if err := surf.Flush(); err != nil {
		log.Warn().Err(err).Msg("final clear failed")
	}
	if srv != nil {
		_ = srv.Close()
	}
	_ = surf.Close()
}

// runDemo sweeps a color wheel across the canvas until done closes.
func runDemo(surf *matrix.Surface, fps int, done chan struct{}) {
	if fps <= 0 {
		fps = 30
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
	start := time.Now()
	b := surf.Bounds()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			phase := time.Since(start).Seconds() / 4
			for y := b.Min.Y; y < b.Max.Y; y++ {
				for x := b.Min.X; x < b.Max.X; x++ {
					h := math.Mod(float64(x+y)/float64(b.Dx()+b.Dy())+phase, 1.0)
					surf.DrawPixel(x, y, pixel.FromColor(colorWheel(h)))
				}
			}
			if err := surf.Flush(); err != nil {
				log.Warn().Err(err).Msg("flush failed; keeping frame for retry")
			}
		}
	}
}

func colorWheel(h float64) color.NRGBA {
	h *= 6
	switch {
	case h < 1.:
		return color.NRGBA{R: 255, G: byte(255 * h), A: 255}
	case h < 2.:
		return color.NRGBA{R: byte(255 * (2 - h)), G: 255, A: 255}
	case h < 3.:
		return color.NRGBA{G: 255, B: byte(255 * (h - 2)), A: 255}
	case h < 4.:
		return color.NRGBA{G: byte(255 * (4 - h)), B: 255, A: 255}
	case h < 5.:
		return color.NRGBA{R: byte(255 * (h - 4)), B: 255, A: 255}
	default:
		return color.NRGBA{R: 255, B: byte(255 * (6 - h)), A: 255}
	}
}

func openWS2812(dev string, channels, hz int) matrix.Transport {
	port, err := spireg.Open(dev)
	if err != nil {
		log.Warn().Err(err).Str("dev", dev).Msg("SPI open failed; falling back to sim")
		return &led.Sim{}
	}
	w, err := led.NewWS2812(port, channels, 0, physic.Frequency(hz)*physic.Hertz)
	if err != nil {
		log.Warn().Err(err).Str("dev", dev).Msg("ws2812 init failed; falling back to sim")
		return &led.Sim{}
	}
	return w
}
