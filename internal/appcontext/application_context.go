package appcontext

import (
	"context"
	"fmt"
	"log"
	"reflect"

	"github.com/RoyceAzure/lab/shopcenter/internal/config"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopcenter/internal/service"
	"github.com/RoyceAzure/rj/api/token"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApplicationContext struct {
	DbConn         *gorm.DB
	DbDao          *db.DbDao
	Cf             *config.Config
	TokenMaker     token.Maker[uuid.UUID]
	UserRepo       db.IUserRepository
	ProductRepo    db.IProductRepository
	CartRepo       db.ICartRepository
	OrderRepo      db.IOrderRepository
	UserService    service.IUserService
	MailService    service.IMailService
	AuthService    service.IAuthService
	ProductService service.IProductService
	CartService    service.ICartService
	OrderService   service.IOrderService
}

func NewApplicationContext(cf *config.Config) (*ApplicationContext, error) {
	app := ApplicationContext{
		Cf: cf,
	}
	v := reflect.ValueOf(*cf)
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		fieldName := t.Field(i).Name
		fieldValue := v.Field(i).Interface()
		fmt.Printf("  \"%s\": \"%v\",\n", fieldName, fieldValue)
	}
	err := app.Init()

	if err != nil {
		return nil, err
	}

	return &app, nil
}

func (app *ApplicationContext) Init() error {
	err := app.setUpdbConn()
	if err != nil {
		return err
	}
	err = app.setUpdbDao()
	if err != nil {
		return err
	}
	err = app.setUpRepos()
	if err != nil {
		return err
	}

	err = app.setUpUserService()
	if err != nil {
		return err
	}

	err = app.setUpMailService()
	if err != nil {
		return err
	}

	err = app.setTokenMaker()
	if err != nil {
		return err
	}

	err = app.setUpAuthService()
	if err != nil {
		return err
	}

	err = app.setUpProductService()
	if err != nil {
		return err
	}

	err = app.setUpCartService()
	if err != nil {
		return err
	}

	err = app.setUpOrderService()
	if err != nil {
		return err
	}

	err = app.dbInit()
	if err != nil {
		return err
	}

	return nil
}

func (app *ApplicationContext) setUpdbConn() error {
	log.Printf("Start setup database connection")
	conn, err := db.GetDbConn(app.Cf.DbName, app.Cf.DbHost, app.Cf.DbPort, app.Cf.DbUser, app.Cf.DbPas)
	if err != nil {
		return err
	}
	app.DbConn = conn
	log.Printf("Finish setup database connection")
	return nil
}

func (app *ApplicationContext) setUpdbDao() error {
	log.Printf("Start setup database DAO")
	app.DbDao = db.NewDbDao(app.DbConn)
	log.Printf("Finish setup database DAO")
	return nil
}

func (app *ApplicationContext) setUpRepos() error {
	log.Printf("Start setup repositories")
	app.UserRepo = db.NewUserRepo(app.DbDao)
	app.ProductRepo = db.NewProductRepo(app.DbDao)
	app.CartRepo = db.NewCartRepo(app.DbDao)
	app.OrderRepo = db.NewOrderRepo(app.DbDao)
	log.Printf("Finish setup repositories")
	return nil
}

func (app *ApplicationContext) setUpUserService() error {
	log.Printf("Start setup user service")
	app.UserService = service.NewUserService(app.UserRepo)
	log.Printf("Finish setup user service")
	return nil
}

func (app *ApplicationContext) setUpMailService() error {
	log.Printf("Start setup mail service")
	app.MailService = service.NewMailService(app.Cf.ModulerName, app.Cf.EmailAccount, app.Cf.SmtpAuthKey)
	log.Printf("Finish setup mail service")
	return nil
}

func (app *ApplicationContext) setUpAuthService() error {
	log.Printf("Start setup auth service")
	app.AuthService = service.NewAuthService(app.UserRepo, app.UserService, app.MailService, app.TokenMaker)
	log.Printf("Finish setup auth service")
	return nil
}

func (app *ApplicationContext) setUpProductService() error {
	log.Printf("Start setup product service")
	app.ProductService = service.NewProductService(app.ProductRepo)
	log.Printf("Finish setup product service")
	return nil
}

func (app *ApplicationContext) setUpCartService() error {
	log.Printf("Start setup cart service")
	app.CartService = service.NewCartService(app.CartRepo, app.ProductRepo)
	log.Printf("Finish setup cart service")
	return nil
}

func (app *ApplicationContext) setUpOrderService() error {
	log.Printf("Start setup order service")
	app.OrderService = service.NewOrderService(app.OrderRepo)
	log.Printf("Finish setup order service")
	return nil
}

func (app *ApplicationContext) setTokenMaker() error {
	log.Printf("Start setup token maker")

	tokenMaker, err := token.NewPasetoMaker[uuid.UUID](app.Cf.AuthTokenKey)
	if err != nil {
		log.Fatalf("無法創建 token maker: %v", err)
	}

	app.TokenMaker = tokenMaker
	log.Printf("Finish setup token maker")
	return nil
}

// db migration
func (app *ApplicationContext) dbInit() error {
	log.Printf("Start setup db init")
	err := app.DbDao.InitMigrate()
	if err != nil {
		return err
	}
	log.Printf("Finish setup db init")
	return nil
}

func (app *ApplicationContext) Shutdown(ctx context.Context) error {
	log.Printf("Start application shutdown")

	done := make(chan error)
	go func() {
		defer close(done)

		// 關閉 DB
		if app.DbConn != nil {
			log.Printf("Closing database connection...")
			sqlDB, err := app.DbConn.DB()
			if err == nil {
				sqlDB.Close()
			}
		}

		log.Printf("Application shutdown complete")
		done <- nil
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("shutdown timeout: %v", ctx.Err())
	}
}
