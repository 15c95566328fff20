package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	temporalclient "go.temporal.io/sdk/client"

	"github.com/efebarandurmaz/depscope/internal/cache"
	"github.com/efebarandurmaz/depscope/internal/config"
	"github.com/efebarandurmaz/depscope/internal/graphstore"
	neo4jstore "github.com/efebarandurmaz/depscope/internal/graphstore/neo4j"
	"github.com/efebarandurmaz/depscope/internal/plugins"
	pythonplugin "github.com/efebarandurmaz/depscope/internal/plugins/source/python"
	"github.com/efebarandurmaz/depscope/internal/render"
	temporalmod "github.com/efebarandurmaz/depscope/internal/temporal"
)

func main() {
	configPath := "configs/depscope.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	extractionCache, err := cache.NewExtractionCache(cfg.Analysis.CacheSize)
	if err != nil {
		log.Fatalf("cache: %v", err)
	}

	registry := plugins.NewRegistry()
	registry.RegisterSource(pythonplugin.New(
		pythonplugin.WithCache(extractionCache)))
	registry.RegisterRenderer(render.DOT{})
	registry.RegisterRenderer(render.Mermaid{})
	registry.RegisterRenderer(render.JSON{})
	registry.RegisterRenderer(render.HTML{})

	var repo graphstore.Repository
	if cfg.Graph.URI != "" {
		ctx := context.Background()
		r, err := neo4jstore.NewNeo4j(ctx, cfg.Graph.URI, cfg.Graph.Username, cfg.Graph.Password)
		if err != nil {
			log.Fatalf("graph store: %v", err)
		}
		defer r.Close(ctx)
		repo = r
	}

	temporalmod.SetDependencies(&temporalmod.Dependencies{
		Registry: registry,
		Repo:     repo,
	})

	c, err := temporalclient.Dial(temporalclient.Options{
		HostPort:  cfg.Temporal.Host,
		Namespace: cfg.Temporal.Namespace,
	})
	if err != nil {
		log.Fatalf("temporal client: %v", err)
	}
	defer c.Close()

	w, err := temporalmod.StartWorker(c, cfg.Temporal.TaskQueue)
	if err != nil {
		log.Fatalf("worker: %v", err)
	}

	fmt.Printf("Worker started on task queue: %s\n", cfg.Temporal.TaskQueue)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	w.Stop()
	fmt.Println("Worker stopped")
}
