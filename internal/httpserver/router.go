package httpserver

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"agrihub/internal/domain"
	productrepo "agrihub/internal/repository/product"
	profilerepo "agrihub/internal/repository/profile"
	advisorysvc "agrihub/internal/service/advisory"
	authsvc "agrihub/internal/service/auth"
	cartsvc "agrihub/internal/service/cart"
	communitysvc "agrihub/internal/service/community"
	diagnosissvc "agrihub/internal/service/diagnosis"
	ordersvc "agrihub/internal/service/order"
	productsvc "agrihub/internal/service/product"
)

// AuthService is what the router needs from the auth layer.
type AuthService interface {
	Signup(ctx context.Context, in authsvc.SignupInput) (*domain.Profile, error)
	Login(ctx context.Context, email, password string) (*domain.Profile, string, string, error)
	Logout(ctx context.Context, token string) error
	LookupByToken(ctx context.Context, token string) (*domain.Profile, error)
	GetProfile(ctx context.Context, id string) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, userID string, in profilerepo.UpdateInput) (*domain.Profile, error)
	ListByRole(ctx context.Context, role domain.Role) ([]domain.Profile, error)
	AccessTTLSeconds() int
}

type ProductService interface {
	Create(ctx context.Context, sellerID string, in productsvc.CreateInput) (*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, f productrepo.Filter) ([]domain.Product, error)
	Update(ctx context.Context, sellerID, id string, in productrepo.UpdateInput) (*domain.Product, error)
	Delete(ctx context.Context, actor *domain.Profile, id string) error
}

type CategoryStore interface {
	List(ctx context.Context) ([]domain.Category, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Category, error)
}

type CartService interface {
	List(ctx context.Context, userID string) ([]domain.CartItem, error)
	Add(ctx context.Context, userID string, in cartsvc.AddInput) (string, []domain.CartItem, error)
	UpdateQuantity(ctx context.Context, userID, id string, quantity int) error
	Remove(ctx context.Context, userID, id string) error
	Clear(ctx context.Context, userID string) error
}

type OrderService interface {
	Checkout(ctx context.Context, buyerID string, in ordersvc.CheckoutInput) ([]domain.Order, error)
	Get(ctx context.Context, actor *domain.Profile, id string) (*domain.Order, error)
	ListForBuyer(ctx context.Context, buyerID string) ([]domain.Order, error)
	ListForSeller(ctx context.Context, sellerID string) ([]domain.Order, error)
	SetStatus(ctx context.Context, sellerID, id, status string) (*domain.Order, error)
}

type AdvisoryService interface {
	UpsertProfile(ctx context.Context, userID string, in advisorysvc.UpsertInput) (*domain.Advisor, error)
	List(ctx context.Context, availableOnly bool) ([]domain.Advisor, error)
	Book(ctx context.Context, farmerID string, in advisorysvc.BookInput) (*domain.Consultation, error)
	ListForFarmer(ctx context.Context, farmerID string) ([]domain.Consultation, error)
	ListForAdvisor(ctx context.Context, userID string) ([]domain.Consultation, error)
}

type CommunityService interface {
	CreatePost(ctx context.Context, authorID string, in communitysvc.CreatePostInput) (*domain.Post, error)
	GetPost(ctx context.Context, id string) (*domain.Post, error)
	ListPosts(ctx context.Context, category string, limit, offset int) ([]domain.Post, error)
	LikePost(ctx context.Context, id string) error
	AddComment(ctx context.Context, authorID, postID, content string) (*domain.Comment, error)
	ListComments(ctx context.Context, postID string) ([]domain.Comment, error)
}

type DiagnosisService interface {
	Record(ctx context.Context, userID string, in diagnosissvc.RecordInput) (*domain.Diagnosis, error)
	History(ctx context.Context, userID string) ([]domain.Diagnosis, error)
}

type NotificationService interface {
	List(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error)
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) error
}

// Deps carries the services the router dispatches to.
type Deps struct {
	AuthSvc      AuthService
	ProductSvc   ProductService
	Categories   CategoryStore
	CartSvc      CartService
	OrderSvc     OrderService
	AdvisorySvc  AdvisoryService
	CommunitySvc CommunityService
	DiagnosisSvc DiagnosisService
	NotifySvc    NotificationService
}

func (d Deps) validate() error {
	if d.AuthSvc == nil {
		return errors.New("auth service is required")
	}
	if d.ProductSvc == nil || d.Categories == nil {
		return errors.New("catalog services are required")
	}
	if d.CartSvc == nil || d.OrderSvc == nil {
		return errors.New("cart and order services are required")
	}
	if d.AdvisorySvc == nil || d.CommunitySvc == nil || d.DiagnosisSvc == nil || d.NotifySvc == nil {
		return errors.New("advisory, community, diagnosis and notification services are required")
	}
	return nil
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, corsOrigins []string) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	if len(corsOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     corsOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")

	api.POST("/auth/signup", signupHandler(deps.AuthSvc))
	api.POST("/auth/login", loginHandler(deps.AuthSvc))
	api.POST("/auth/logout", logoutHandler(deps.AuthSvc))

	api.GET("/categories", listCategoriesHandler(deps.Categories))
	api.GET("/categories/:slug", getCategoryHandler(deps.Categories))
	api.GET("/products", listProductsHandler(deps.ProductSvc))
	api.GET("/products/:id", getProductHandler(deps.ProductSvc))
	api.GET("/advisors", listAdvisorsHandler(deps.AdvisorySvc))
	api.GET("/posts", listPostsHandler(deps.CommunitySvc))
	api.GET("/posts/:id", getPostHandler(deps.CommunitySvc))
	api.GET("/posts/:id/comments", listCommentsHandler(deps.CommunitySvc))

	authed := api.Group("", authMiddleware(deps.AuthSvc))

	authed.GET("/me", meHandler())
	authed.PATCH("/me", updateMeHandler(deps.AuthSvc))

	authed.POST("/products", requireRole(domain.RoleFarmer), createProductHandler(deps.ProductSvc))
	authed.PATCH("/products/:id", requireRole(domain.RoleFarmer), updateProductHandler(deps.ProductSvc))
	authed.DELETE("/products/:id", deleteProductHandler(deps.ProductSvc))

	authed.GET("/cart", listCartHandler(deps.CartSvc))
	authed.POST("/cart/items", addCartItemHandler(deps.CartSvc))
	authed.PATCH("/cart/items/:id", updateCartItemHandler(deps.CartSvc))
	authed.DELETE("/cart/items/:id", removeCartItemHandler(deps.CartSvc))
	authed.DELETE("/cart", clearCartHandler(deps.CartSvc))

	authed.POST("/orders", checkoutHandler(deps.OrderSvc))
	authed.GET("/orders", listOrdersHandler(deps.OrderSvc))
	authed.GET("/orders/sales", requireRole(domain.RoleFarmer), listSalesHandler(deps.OrderSvc))
	authed.GET("/orders/:id", getOrderHandler(deps.OrderSvc))
	authed.PATCH("/orders/:id/status", requireRole(domain.RoleFarmer), setOrderStatusHandler(deps.OrderSvc))

	authed.PUT("/advisors/me", requireRole(domain.RoleAgronomist), upsertAdvisorHandler(deps.AdvisorySvc))
	authed.POST("/consultations", bookConsultationHandler(deps.AdvisorySvc))
	authed.GET("/consultations", listConsultationsHandler(deps.AdvisorySvc))
	authed.GET("/consultations/assigned", requireRole(domain.RoleAgronomist), listAssignedConsultationsHandler(deps.AdvisorySvc))

	authed.POST("/posts", createPostHandler(deps.CommunitySvc))
	authed.POST("/posts/:id/like", likePostHandler(deps.CommunitySvc))
	authed.POST("/posts/:id/comments", addCommentHandler(deps.CommunitySvc))

	authed.POST("/diagnoses", recordDiagnosisHandler(deps.DiagnosisSvc))
	authed.GET("/diagnoses", listDiagnosesHandler(deps.DiagnosisSvc))

	authed.GET("/notifications", listNotificationsHandler(deps.NotifySvc))
	authed.POST("/notifications/:id/read", markNotificationReadHandler(deps.NotifySvc))
	authed.POST("/notifications/read-all", markAllNotificationsReadHandler(deps.NotifySvc))

	authed.GET("/admin/users", requireRole(domain.RoleAdmin), listUsersHandler(deps.AuthSvc))

	return router, nil
}
