// Cuckaroo29 Solver: GPU-Accelerated Cuckoo Cycle Proof-of-Work Client
// Copyright (C) 2026  Guillermo Perry
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/atotto/clipboard"

	"github.com/opencuckoo/cuckaroo29/internal/config"
	"github.com/opencuckoo/cuckaroo29/internal/pool"
	"github.com/opencuckoo/cuckaroo29/internal/sizing"
	"github.com/opencuckoo/cuckaroo29/internal/solver"
)

const (
	exitOK      = 0
	exitError   = 1
	exitNoSolve = 2
)

var (
	poolAddr   = flag.String("o", "", "pool address, host:port")
	username   = flag.String("u", "", "pool worker username")
	password   = flag.String("p", "x", "pool worker password")
	device     = flag.String("d", "cpu", "compute backend: cpu, cuda, or remote")
	useTLS     = flag.Bool("tls", false, "use TLS for the pool connection")
	benchmark  = flag.Bool("benchmark", false, "solve one locally-generated job and exit, skipping the pool")
	copyProof  = flag.Bool("copy-proof", false, "copy an accepted proof's 42 nonces to the clipboard")
	configPath = flag.String("config", "solver.yaml", "path to solver tuning YAML")
	autoSize   = flag.Bool("auto-size", false, "size buckets/counters from available host memory instead of the config file")
)

func init() {
	if addr := os.Getenv("POOL_ADDRESS"); addr != "" && *poolAddr == "" {
		*poolAddr = addr
	}
}

func main() {
	flag.Parse()
	os.Exit(run())
}

func run() int {
	cfg, err := config.LoadSolverConfig(*configPath)
	if err != nil {
		log.Printf("solver-cli: %v", err)
		return exitError
	}
	if *autoSize {
		budget, err := sizing.DetectBudget(0.25)
		if err != nil {
			log.Printf("solver-cli: %v", err)
			return exitError
		}
		cfg = sizing.Plan(budget)
	}
	// *device does not select a pkg/compute backend: solver-cli's own
	// pipeline always runs on the host CPU reference implementation. The
	// flag still rejects unrecognized values rather than silently ignoring
	// them.
	switch *device {
	case "cpu", "cuda", "remote":
	default:
		log.Printf("solver-cli: unsupported -d backend %q, want cpu, cuda, or remote", *device)
		return exitError
	}

	s := solver.New(cfg)

	if *benchmark {
		return runBenchmark(s)
	}
	return runPoolLoop(s)
}

func runBenchmark(s *solver.Solver) int {
	job, err := solver.Prepare([]byte("benchmark-job-blob"), 0)
	if err != nil {
		log.Printf("solver-cli: prepare benchmark job: %v", err)
		return exitError
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	proof, err := s.Solve(ctx, job)
	elapsed := time.Since(start)
	if err != nil {
		log.Printf("solver-cli: benchmark found no cycle in %s: %v", elapsed, err)
		return exitNoSolve
	}

	log.Printf("solver-cli: benchmark found a 42-cycle in %s", elapsed)
	maybeCopyProof(proof)
	return exitOK
}

func runPoolLoop(s *solver.Solver) int {
	if *poolAddr == "" {
		log.Printf("solver-cli: -o pool address is required outside --benchmark mode")
		return exitError
	}

	client, err := pool.Dial(*poolAddr, *useTLS)
	if err != nil {
		log.Printf("solver-cli: %v", err)
		return exitError
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	sub, err := client.Subscribe(ctx, "cuckaroo29-solver/1.0")
	cancel()
	if err != nil {
		log.Printf("solver-cli: subscribe failed: %v", err)
		return exitError
	}
	log.Printf("solver-cli: subscribed, session %s extranonce %s", sub.SessionID, sub.Extranonce)

	ctx, cancel = context.WithTimeout(context.Background(), 15*time.Second)
	ok, err := client.Authorize(ctx, *username, *password)
	cancel()
	if err != nil || !ok {
		log.Printf("solver-cli: authorize failed: %v", err)
		return exitError
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case sig := <-sigCh:
			log.Printf("solver-cli: received %s, shutting down", sig)
			return exitOK
		case job, ok := <-client.Jobs:
			if !ok {
				log.Printf("solver-cli: pool connection closed")
				return exitError
			}
			solveAndSubmit(s, client, job)
		}
	}
}

func solveAndSubmit(s *solver.Solver, client *pool.Client, job pool.JobNotify) {
	solverJob, err := solver.Prepare(job.JobBlob, job.NonceSeed)
	if err != nil {
		log.Printf("solver-cli: prepare job %s: %v", job.JobID, err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	proof, err := s.Solve(ctx, solverJob)
	if err != nil {
		log.Printf("solver-cli: job %s: no cycle found: %v", job.JobID, err)
		return
	}

	submitCtx, submitCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer submitCancel()
	result, err := client.Submit(submitCtx, job.JobID, proof)
	if err != nil {
		log.Printf("solver-cli: submit job %s failed: %v", job.JobID, err)
		return
	}
	if !result.Accepted {
		log.Printf("solver-cli: job %s rejected: %s", job.JobID, result.Reason)
		return
	}

	log.Printf("solver-cli: job %s accepted", job.JobID)
	maybeCopyProof(proof)
}

func maybeCopyProof(proof solver.Proof42) {
	if !*copyProof {
		return
	}
	text := fmt.Sprint(proof)
	if err := clipboard.WriteAll(text); err != nil {
		log.Printf("solver-cli: copy proof to clipboard: %v", err)
		return
	}
	log.Printf("solver-cli: proof copied to clipboard")
}
