package pool

import (
	"bufio"
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"
)

// fakeServer accepts one connection and replies to requests from the
// scripted handler, optionally pushing notifications.
func fakeServer(t *testing.T, handle func(conn net.Conn, req request)) string {
	t.Helper()

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	t.Cleanup(func() { lis.Close() })

	go func() {
		conn, err := lis.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		scanner := bufio.NewScanner(conn)
		for scanner.Scan() {
			var req request
			if err := json.Unmarshal(scanner.Bytes(), &req); err != nil {
				continue
			}
			handle(conn, req)
		}
	}()

	return lis.Addr().String()
}

func writeResponse(t *testing.T, conn net.Conn, id *int, result any) {
	t.Helper()
	raw, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal result: %v", err)
	}
	resp := response{ID: id, Result: raw}
	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal response: %v", err)
	}
	data = append(data, '\n')
	if _, err := conn.Write(data); err != nil {
		t.Fatalf("write response: %v", err)
	}
}

func TestSubscribeAndAuthorize(t *testing.T) {
	addr := fakeServer(t, func(conn net.Conn, req request) {
		switch req.Method {
		case "mining.subscribe":
			writeResponse(t, conn, req.ID, SubscribeResult{SessionID: "sess-1", Extranonce: "ab12"})
		case "mining.authorize":
			writeResponse(t, conn, req.ID, true)
		}
	})

	c, err := Dial(addr, false)
	if err != nil {
		t.Fatalf("Dial returned error: %v", err)
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sub, err := c.Subscribe(ctx, "cuckaroo-solver/1.0")
	if err != nil {
		t.Fatalf("Subscribe returned error: %v", err)
	}
	if sub.SessionID != "sess-1" {
		t.Fatalf("SessionID = %q, want sess-1", sub.SessionID)
	}

	ok, err := c.Authorize(ctx, "worker1", "x")
	if err != nil {
		t.Fatalf("Authorize returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected Authorize to succeed")
	}
}

func TestSubmitAccepted(t *testing.T) {
	addr := fakeServer(t, func(conn net.Conn, req request) {
		if req.Method == "mining.submit" {
			writeResponse(t, conn, req.ID, submitResult{Accepted: true})
		}
	})

	c, err := Dial(addr, false)
	if err != nil {
		t.Fatalf("Dial returned error: %v", err)
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var proof [42]uint32
	result, err := c.Submit(ctx, "job-1", proof)
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if !result.Accepted {
		t.Fatalf("expected proof to be accepted")
	}
}

func TestJobNotifyDelivered(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	defer lis.Close()

	go func() {
		conn, err := lis.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		notify := JobNotify{JobID: "job-7", JobBlob: []byte{1, 2, 3}, NonceSeed: 42, Difficulty: 1000}
		raw, _ := json.Marshal(notify)
		resp := response{Result: raw}
		data, _ := json.Marshal(resp)
		data = append(data, '\n')
		conn.Write(data)

		// Keep the connection open so the client's read loop doesn't exit.
		time.Sleep(200 * time.Millisecond)
	}()

	c, err := Dial(lis.Addr().String(), false)
	if err != nil {
		t.Fatalf("Dial returned error: %v", err)
	}
	defer c.Close()

	select {
	case job := <-c.Jobs:
		if job.JobID != "job-7" {
			t.Fatalf("JobID = %q, want job-7", job.JobID)
		}
		if job.NonceSeed != 42 {
			t.Fatalf("NonceSeed = %d, want 42", job.NonceSeed)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for job notification")
	}
}
