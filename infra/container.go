package infra

import (
	"context"
	"net/http"

	"cotacao/infra/cache"
	"cotacao/infra/metrics"
	"cotacao/infra/token"
	"cotacao/internal/consulta"
	"cotacao/internal/wizard"
	"cotacao/internal/ws"
	"cotacao/pkg/plate"
	"cotacao/pkg/proposal"

	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type ContainerDI struct {
	Config           Config
	Redis            *redis.Client
	Registry         *prometheus.Registry
	Metrics          *metrics.Metrics
	PasetoMaker      token.Maker
	PlateClient      *plate.Client
	Hub              *ws.Hub
	WizardRepository wizard.InterfaceRepository
	ServiceWizard    *wizard.Service
	ServiceConsulta  *consulta.Service
	HandlerWizard    *wizard.Handler
	HandlerConsulta  *consulta.Handler
	WsHandler        *ws.Handler
}

func NewContainerDI(ctx context.Context, config Config) *ContainerDI {
	container := &ContainerDI{Config: config}
	container.buildPkg(ctx)
	container.buildRepository()
	container.buildService()
	container.buildHandler(ctx)
	return container
}

func (c *ContainerDI) buildPkg(ctx context.Context) {
	rdb, err := cache.NewRedisClient(ctx, c.Config.RedisUrl)
	if err != nil {
		panic(err.Error())
	}
	c.Redis = rdb

	maker, err := token.NewPasetoMaker(c.Config.SignatureToken)
	if err != nil {
		panic("SIGNATURE_STRING: " + err.Error())
	}
	c.PasetoMaker = maker

	c.Registry = prometheus.NewRegistry()
	c.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	c.Metrics = metrics.New(c.Registry)

	c.PlateClient = plate.NewClient(c.Config.PlacaFipeURL, c.Config.PlacaFipeAPIKey, c.Redis)
}

func (c *ContainerDI) buildRepository() {
	if c.Redis != nil {
		c.WizardRepository = wizard.NewRedisRepository(c.Redis, c.Config.SessionTTL)
		return
	}
	c.WizardRepository = wizard.NewMemoryRepository(c.Config.SessionTTL)
}

func (c *ContainerDI) buildService() {
	lookup := wizard.NewHTTPLookup(c.Config.LookupBaseURL, &http.Client{})
	c.ServiceWizard = wizard.NewWizardService(
		c.WizardRepository,
		lookup,
		proposal.NewGenerator(),
		c.PasetoMaker,
		c.Config.SessionTTL,
		c.Config.LookupTimeout,
	)
	c.ServiceWizard.SetMetrics(c.Metrics)
	c.ServiceConsulta = consulta.NewConsultaService(c.PlateClient, c.Metrics)
}

func (c *ContainerDI) buildHandler(ctx context.Context) {
	c.HandlerWizard = wizard.NewWizardHandler(c.ServiceWizard)
	c.HandlerConsulta = consulta.NewConsultaHandler(c.ServiceConsulta)

	c.Hub = ws.NewHub()
	c.ServiceWizard.SetPublisher(c.Hub)
	c.WsHandler = ws.NewWsHandler(c.Hub, c.ServiceWizard)
	go c.Hub.Run(ctx)
}
