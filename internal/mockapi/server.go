// Package mockapi is a development stand-in for the dealership backend. It
// serves the same REST surface the terminal client consumes, backed by
// in-memory state, so the client can be exercised without the production
// server.
package mockapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bikedesk/internal/config"
	"bikedesk/internal/domain/models"
)

// Server bundles the in-memory database with its HTTP surface.
type Server struct {
	cfg    config.MockAPIConfig
	db     *database
	logger *zap.Logger
}

// NewServer builds the development backend.
func NewServer(cfg config.MockAPIConfig, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := newDatabase(cfg)
	if err != nil {
		return nil, err
	}

	return &Server{cfg: cfg, db: db, logger: logger}, nil
}

// Engine wires the Gin engine with required routes and middlewares.
func (s *Server) Engine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(s.logger))

	r.GET("/", s.handleVerify)
	r.POST("/api/auth/login", s.handleLogin)

	authed := r.Group("/api", authMiddleware(s.cfg.JWTSecret))
	{
		authed.GET("/bikes", s.handleListBikes)
		authed.POST("/bikes", s.handleCreateBike)
		authed.PUT("/bikes/:id", s.handleUpdateBike)
		authed.DELETE("/bikes/:id", s.handleDeleteBike)

		authed.GET("/customers", s.handleListCustomers)
		authed.POST("/customers", s.handleCreateCustomer)
		authed.PUT("/customers/:id", s.handleUpdateCustomer)
		authed.DELETE("/customers/:id", s.handleDeleteCustomer)

		// The client calls /api/sales/ with a trailing slash; gin's default
		// trailing-slash redirect folds it onto this route.
		authed.GET("/sales", s.handleListSales)
		authed.POST("/sales", s.handleCreateSale)
		authed.GET("/sales/:customerId", s.handleSalesByCustomer)

		authed.GET("/dashboard/stats", s.handleDashboardStats)
		authed.GET("/dashboard/sales-overview", s.handleSalesOverview)
		authed.GET("/dashboard/top-bikes", s.handleTopBikes)
		authed.GET("/dashboard/revenue", s.handleRevenue)
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)))
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
		return
	}

	user, ok := s.db.authenticate(req.Email, req.Password)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		return
	}

	token, err := generateToken(s.cfg.JWTSecret, user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// handleVerify answers the launch-time session check: 200 with the user when
// the bearer token is valid, 401 otherwise.
func (s *Server) handleVerify(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	tokenString := ""
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		tokenString = authHeader[7:]
	}

	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "No active session"})
		return
	}

	tokenClaims, err := validateToken(s.cfg.JWTSecret, tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
		return
	}

	user, ok := s.db.userByID(tokenClaims.UserID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unknown user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (s *Server) handleListBikes(c *gin.Context) {
	c.JSON(http.StatusOK, s.db.listBikes())
}

type createBikeRequest struct {
	models.BikeInput
	Brand string `json:"brand"`
}

func (s *Server) handleCreateBike(c *gin.Context) {
	var req createBikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid bike payload"})
		return
	}
	if err := req.BikeInput.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if req.Brand == "" {
		req.Brand = models.DefaultBrand
	}

	bike := s.db.createBike(models.Bike{
		Brand:         req.Brand,
		Model:         req.Model,
		Color:         req.Color,
		EngineCC:      req.EngineCC,
		PurchasePrice: req.PurchasePrice,
		SellingPrice:  req.SellingPrice,
		Stock:         req.Stock,
		Status:        req.Status,
	})
	c.JSON(http.StatusCreated, bike)
}

func (s *Server) handleUpdateBike(c *gin.Context) {
	var input models.BikeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid bike payload"})
		return
	}
	if err := input.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	bike, err := s.db.updateBike(c.Param("id"), input)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Bike not found"})
		return
	}
	c.JSON(http.StatusOK, bike)
}

func (s *Server) handleDeleteBike(c *gin.Context) {
	if err := s.db.deleteBike(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Bike not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bike deleted"})
}

func (s *Server) handleListCustomers(c *gin.Context) {
	c.JSON(http.StatusOK, s.db.listCustomers())
}

func (s *Server) handleCreateCustomer(c *gin.Context) {
	var input models.CustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid customer payload"})
		return
	}
	if err := input.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, s.db.createCustomer(input))
}

func (s *Server) handleUpdateCustomer(c *gin.Context) {
	var input models.CustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid customer payload"})
		return
	}
	if err := input.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	customer, err := s.db.updateCustomer(c.Param("id"), input)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Customer not found"})
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (s *Server) handleDeleteCustomer(c *gin.Context) {
	if err := s.db.deleteCustomer(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Customer not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted"})
}

func (s *Server) handleListSales(c *gin.Context) {
	c.JSON(http.StatusOK, s.db.listSales())
}

func (s *Server) handleCreateSale(c *gin.Context) {
	var input models.SaleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid sale payload"})
		return
	}

	sale, err := s.db.createSale(input)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, sale)
	case err == errInsufficientStock:
		c.JSON(http.StatusConflict, gin.H{"message": "Insufficient stock available"})
	default:
		c.JSON(http.StatusNotFound, gin.H{"message": "Bike or customer not found"})
	}
}

func (s *Server) handleSalesByCustomer(c *gin.Context) {
	c.JSON(http.StatusOK, s.db.salesByCustomer(c.Param("customerId")))
}
