package bootstrap

import (
	"database/sql"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/sitegenio/sitegen-backend/internal/api/http"
	"github.com/sitegenio/sitegen-backend/internal/api/http/middleware"
	"github.com/sitegenio/sitegen-backend/internal/auth"
	authmw "github.com/sitegenio/sitegen-backend/internal/auth/middleware"
	"github.com/sitegenio/sitegen-backend/internal/deployments"
	"github.com/sitegenio/sitegen-backend/internal/designs"
	"github.com/sitegenio/sitegen-backend/internal/domains"
	"github.com/sitegenio/sitegen-backend/internal/hosting"
	"github.com/sitegenio/sitegen-backend/internal/llm"
	"github.com/sitegenio/sitegen-backend/internal/projects"
	"github.com/sitegenio/sitegen-backend/internal/sitecode"
	"github.com/sitegenio/sitegen-backend/internal/users"
)

type RouterDeps struct {
	ServiceName  string
	Version      string
	DB           *sql.DB
	Redis        *redis.Client
	AI           llm.Client
	Hosting      *hosting.Client
	FirebaseAuth *firebaseauth.Client
}

// BuildRouter wires every feature handler onto a gin engine. The returned
// DeploymentService is also used by the background status refresher.
func BuildRouter(dep RouterDeps) (*gin.Engine, *deployments.Service) {
	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.RequestIDMiddleware())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")

	userRepo := users.NewRepo(dep.DB)
	designRepo := designs.NewRepo(dep.DB)
	codeRepo := sitecode.NewRepo(dep.DB)
	projectRepo := projects.NewRepo(dep.DB)
	deploymentRepo := deployments.NewRepo(dep.DB)
	domainRepo := domains.NewRepo(dep.DB)

	if dep.FirebaseAuth != nil {
		api.Use(authmw.FirebaseAuthMiddleware(dep.FirebaseAuth))
	}
	api.Use(auth.WithUser(userRepo))

	var candidates *designs.CandidateStore
	if dep.Redis != nil {
		candidates = designs.NewCandidateStore(dep.Redis)
	}

	designsGroup := api.Group("/designs")
	designs.Register(designsGroup, designs.NewHandler(designRepo, designs.NewGenerator(dep.AI), candidates))
	sitecode.RegisterDesignCodeRoutes(designsGroup, api, sitecode.NewHandler(codeRepo, designRepo, sitecode.NewGenerator(dep.AI)))

	projectsGroup := api.Group("/projects")
	projects.Register(projectsGroup, projectRepo, dep.Hosting)

	deployService := deployments.NewService(deploymentRepo, projectRepo, codeRepo, dep.Hosting)
	deployments.Register(api, projectsGroup, deployService)

	domainService := domains.NewService(domainRepo, projectRepo, deploymentRepo, dep.Hosting)
	domains.Register(api, projectsGroup, domainService)

	return r, deployService
}
