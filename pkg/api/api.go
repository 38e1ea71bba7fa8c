package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"rs2tools/pkg/log"
	"rs2tools/pkg/rs2crypto"
	"rs2tools/pkg/selfcheck"
)

type EncryptRequest struct {
	Text   string `json:"text"`
	Sizing string `json:"sizing,omitempty"`
}

type EncryptResponse struct {
	Words  []uint32 `json:"words"`
	Sizing string   `json:"sizing"`
}

type DecryptRequest struct {
	Words []uint32 `json:"words"`
}

type DecryptResponse struct {
	Text string `json:"text"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type Api struct {
	Echo          *echo.Echo
	DefaultSizing rs2crypto.Sizing
}

func NewApi(defaultSizing rs2crypto.Sizing) *Api {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	a := &Api{Echo: e, DefaultSizing: defaultSizing}
	e.POST("/encrypt", a.Encrypt)
	e.POST("/decrypt", a.Decrypt)
	e.GET("/check", a.Check)
	return a
}

func badRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
}

func (a *Api) Encrypt(c echo.Context) error {
	var req EncryptRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, errors.New("malformed request body"))
	}
	sz := a.DefaultSizing
	if req.Sizing != "" {
		var err error
		if sz, err = rs2crypto.ParseSizing(req.Sizing); err != nil {
			return badRequest(c, err)
		}
	}
	words, err := rs2crypto.EncryptString(req.Text, sz)
	if err != nil {
		return badRequest(c, err)
	}
	log.Info().Str("text", req.Text).Str("sizing", sz.String()).Int("words", len(words)).Msg("api encrypt")
	return c.JSON(http.StatusOK, EncryptResponse{Words: words, Sizing: sz.String()})
}

func (a *Api) Decrypt(c echo.Context) error {
	var req DecryptRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, errors.New("malformed request body"))
	}
	text, err := rs2crypto.DecryptString(req.Words)
	if err != nil {
		return badRequest(c, err)
	}
	log.Info().Str("text", text).Int("words", len(req.Words)).Msg("api decrypt")
	return c.JSON(http.StatusOK, DecryptResponse{Text: text})
}

func (a *Api) Check(c echo.Context) error {
	report := selfcheck.Run()
	status := http.StatusOK
	if !report.OK() {
		status = http.StatusInternalServerError
	}
	return c.JSON(status, report)
}

// Run serves until the listener fails or Shutdown is called.
func (a *Api) Run(addr string) error {
	log.Printf("api listening on %s", addr)
	err := a.Echo.Start(addr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
