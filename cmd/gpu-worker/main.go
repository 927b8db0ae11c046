// Cuckaroo29 Solver: GPU-Accelerated Cuckoo Cycle Proof-of-Work Client
// Copyright (C) 2026  Guillermo Perry
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	"github.com/opencuckoo/cuckaroo29/pkg/compute/backend/remote"
)

var (
	port         = flag.Int("port", 8890, "gRPC server port")
	workers      = flag.Int("workers", runtime.NumCPU(), "CPU worker-pool size for kernel execution")
	counterWords = flag.Int("counter-words", 1<<24, "degree-counter table size, in 32-bit words")
)

func main() {
	flag.Parse()

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", *port))
	if err != nil {
		log.Fatalf("gpu-worker: failed to listen on port %d: %v", *port, err)
	}

	srv := grpc.NewServer()
	worker := remote.NewServer(*workers, *counterWords)
	remote.RegisterWorkerServer(srv, worker)
	reflection.Register(srv)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Printf("gpu-worker: shutting down")
		srv.GracefulStop()
	}()

	log.Printf("gpu-worker: listening on %s with %d workers", lis.Addr(), *workers)
	if err := srv.Serve(lis); err != nil {
		log.Fatalf("gpu-worker: serve: %v", err)
	}
}
