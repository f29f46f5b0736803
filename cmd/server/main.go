package main

import (
	"context"
	"log"
	"net"

	"google.golang.org/grpc"

	"makerbook/api/grpcserver"
	pb "makerbook/api/pb"
	"makerbook/api/wsfeed"
	"makerbook/config"
	"makerbook/domain/book"
	"makerbook/engine"
	"makerbook/infra/kafka"
	"makerbook/infra/oracle"
	"makerbook/infra/outbox"
	"makerbook/infra/sequence"
	"makerbook/infra/vault"
	"makerbook/infra/wal"
	"makerbook/jobs/broadcaster"
	"makerbook/service"
)

func main() {
	// ---------------- Config ----------------

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	log.Printf("[main] %s", cfg)

	// ---------------- Oracles ----------------

	feed, err := oracle.NewMedianizer(cfg.Oracle.UsdPerEth)
	if err != nil {
		log.Fatalf("medianizer init failed: %v", err)
	}
	burner, err := oracle.NewFeeBurner(cfg.Oracle.KncPerEth)
	if err != nil {
		log.Fatalf("fee burner init failed: %v", err)
	}

	// ---------------- Vault ----------------

	bank := vault.NewBank("reserve")

	// ---------------- Engine ----------------

	res, err := engine.New(engine.Config{
		Network:           book.Address(cfg.Reserve.Network),
		BurnFeeBps:        cfg.Reserve.BurnFeeBps,
		MinOrderSizeUsd:   cfg.Reserve.MinOrderSizeUsd,
		MaxOrdersPerTrade: cfg.Reserve.MaxOrdersPerTrade,
		Rates:             burner,
		Oracle:            feed,
		Vault:             bank,
	})
	if err != nil {
		log.Fatalf("reserve init failed: %v", err)
	}

	// ---------------- Journal ----------------

	journal, err := wal.Open(wal.Config{
		Dir:         cfg.Journal.WALDir,
		SegmentSize: cfg.Journal.SegmentSize,
	})
	if err != nil {
		log.Fatalf("journal init failed: %v", err)
	}
	defer journal.Close()

	// ---------------- Outbox ----------------

	ob, err := outbox.Open(cfg.Journal.OutboxDir)
	if err != nil {
		log.Fatalf("outbox init failed: %v", err)
	}
	defer ob.Close()

	// ---------------- Sequencer ----------------

	seqGen := sequence.New(0)

	// ---------------- Bootstrap ----------------

	if err := service.Bootstrap(
		cfg.Journal.SnapshotDir,
		cfg.Journal.WALDir,
		res,
		seqGen,
		feed,
		burner,
		bank,
	); err != nil {
		log.Fatalf("bootstrap failed: %v", err)
	}

	// ---------------- Service ----------------

	svc := service.NewReserveService(res, seqGen, journal, ob, feed, burner)

	// ---------------- Background Jobs ----------------

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc.StartSnapshotJob(ctx, cfg.Journal.SnapshotDir, cfg.Journal.SnapshotInterval)

	if cfg.Kafka.Enabled {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.EventTopic)
		defer producer.Close()
		svc.SetProducer(producer)

		bc, err := broadcaster.New(ob, cfg.Kafka.Brokers, cfg.Kafka.TradeTopic)
		if err != nil {
			log.Fatalf("broadcaster init failed: %v", err)
		}
		defer bc.Close()
		bc.Start(ctx)
	}

	// ---------------- Market data feed ----------------

	feedSrv := wsfeed.New()
	svc.SetFeedPublisher(feedSrv)
	go func() {
		if err := feedSrv.Serve(cfg.Server.WSAddr); err != nil {
			log.Fatalf("wsfeed exited: %v", err)
		}
	}()

	// ---------------- gRPC ----------------

	lis, err := net.Listen("tcp", cfg.Server.GRPCAddr)
	if err != nil {
		log.Fatalf("listen failed: %v", err)
	}

	grpcSrv := grpc.NewServer()
	pb.RegisterReserveServiceServer(
		grpcSrv,
		grpcserver.NewServer(svc),
	)

	log.Printf("[main] reserve serving on %s", cfg.Server.GRPCAddr)

	if err := grpcSrv.Serve(lis); err != nil {
		log.Fatalf("gRPC server exited: %v", err)
	}
}
