package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"git.thinkinpower.net/ccform/cardtype"
	"git.thinkinpower.net/ccform/catalog"
	"git.thinkinpower.net/ccform/data"
	"git.thinkinpower.net/ccform/emit"
	"git.thinkinpower.net/ccform/form"
	"git.thinkinpower.net/ccform/middleware"
	"git.thinkinpower.net/ccform/route"
	"github.com/gin-gonic/gin"
	logger "github.com/sirupsen/logrus"
)

func setMode(mode string) {
	switch mode {
	case data.RunModeDev:
		gin.SetMode(gin.DebugMode)
	case data.RunModeTest:
		gin.SetMode(gin.TestMode)
	case data.RunModeRelease:
		gin.SetMode(gin.ReleaseMode)
	}
}

func main() {
	logger.SetFormatter(&logger.TextFormatter{FullTimestamp: true})
	logger.SetOutput(os.Stdout)
	logger.SetLevel(logger.InfoLevel)

	port := flag.Int("p", 8080, "-p 8080")
	mode := flag.String("m", "dev", "-m [dev|test|release]")
	dataDir := flag.String("d", "", "-d /home/testuser/ccform, directory holding messages.yaml")
	disable := flag.String("disable", "", "-disable ccv,cardHolder")
	flag.Parse()

	options, err := form.DefaultOptions().DisableFields(strings.Split(*disable, ",")...)
	if err != nil {
		logger.Fatalf("invalid -disable: %s", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	messages := catalog.New()
	if *dataDir != "" {
		if err = messages.Load(*dataDir); err != nil {
			logger.Warnf("load message catalogue failed, using defaults: %s", err)
		}
		go func() {
			if err := messages.Watch(ctx, *dataDir); err != nil {
				logger.Errorf("watch message catalogue: %s", err)
			}
		}()
	}

	registry := cardtype.Default()
	validator, err := form.New(registry, options, messages)
	if err != nil {
		logger.Fatalf("create validator: %s", err)
	}
	active := validator.Options()
	logger.WithFields(logger.Fields{
		"cardNumber":      active.ValidateCCNum,
		"cardHolder":      active.ValidateCardHolder,
		"expirationDay":   active.ValidateExpirationDay,
		"expirationMonth": active.ValidateExpirationMonth,
		"ccv":             active.ValidateCCV,
	}).Info("card form validation")
	emitter := emit.NewEmitter()
	emitter.AddListener(emit.LogListener(registry))

	logger.Info("starting http server...")
	setMode(*mode)
	r := gin.New()
	r.Use(middleware.Log())
	r.Use(middleware.Recovery())
	route.Register(r, route.NewCardHandler(registry, validator, emitter))

	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", *port),
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}
	go func() {
		logger.Infof("listening on port %d", *port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("listen: %s", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with
	// a timeout of 5 seconds.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down Server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server Shutdown failure.", err)
	}
	logger.Info("Server exit.")
}
