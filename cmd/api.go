package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"cotacao/infra"
	_midlleware "cotacao/infra/middleware"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewServer(container *infra.ContainerDI) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  []string{"*"},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowMethods:  middleware.DefaultCORSConfig.AllowMethods,
		ExposeHeaders: []string{echo.HeaderContentDisposition},
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(container.Registry, promhttp.HandlerOpts{})))

	e.GET("/api", container.HandlerConsulta.Status)
	e.GET("/api/consultar-placa/:plate", container.HandlerConsulta.ConsultarPlaca)
	e.POST("/api/calcular-cotacao", container.HandlerConsulta.CalcularCotacao)

	e.POST("/wizard/session", container.HandlerWizard.StartSession)

	w := e.Group("/wizard", _midlleware.CheckSession(container.PasetoMaker))
	w.GET("/state", container.HandlerWizard.GetState)
	w.POST("/customer", container.HandlerWizard.SubmitCustomer)
	w.POST("/consult", container.HandlerWizard.Consult)
	w.DELETE("/error", container.HandlerWizard.DismissError)
	w.POST("/reset", container.HandlerWizard.Reset)
	w.GET("/plans/:index/proposal", container.HandlerWizard.ExportProposal)
	w.GET("/ws", container.WsHandler.HandleWs)

	return e
}

func StartAPI(ctx context.Context, container *infra.ContainerDI) {
	e := NewServer(container)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			e.Logger.Error(err)
		}
	}()

	if err := e.Start(container.Config.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
		e.Logger.Fatal(err)
	}
}
