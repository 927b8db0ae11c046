package pool

import (
	"bufio"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"sync"
	"time"
)

var logger = log.New(log.Writer(), "[pool] ", log.LstdFlags)

const dialTimeout = 10 * time.Second

// Client is a Stratum-style JSON-line pool connection. One Client serves one
// TCP (or TLS) session; reconnection is the caller's responsibility.
type Client struct {
	conn    net.Conn
	writer  *bufio.Writer
	writeMu sync.Mutex

	pendingMu sync.Mutex
	pending   map[int]chan response
	nextID    int

	// Jobs receives every mining.notify the pool pushes. The caller should
	// drain it continuously; a full channel drops the oldest job to avoid
	// blocking the read loop on a slow consumer.
	Jobs chan JobNotify

	closeOnce sync.Once
	done      chan struct{}
}

// Dial connects to a pool at addr, optionally over TLS.
func Dial(addr string, useTLS bool) (*Client, error) {
	var conn net.Conn
	var err error
	if useTLS {
		d := &tls.Dialer{NetDialer: &net.Dialer{Timeout: dialTimeout}}
		conn, err = d.Dial("tcp", addr)
	} else {
		conn, err = net.DialTimeout("tcp", addr, dialTimeout)
	}
	if err != nil {
		return nil, fmt.Errorf("pool: dial %s: %w", addr, err)
	}

	c := &Client{
		conn:    conn,
		writer:  bufio.NewWriter(conn),
		pending: make(map[int]chan response),
		Jobs:    make(chan JobNotify, 8),
		done:    make(chan struct{}),
	}
	go c.readLoop()
	return c, nil
}

// Subscribe registers the client's user agent and returns the pool-assigned
// session and extranonce.
func (c *Client) Subscribe(ctx context.Context, userAgent string) (SubscribeResult, error) {
	params, _ := json.Marshal([]string{userAgent})
	raw, err := c.call(ctx, "mining.subscribe", params)
	if err != nil {
		return SubscribeResult{}, err
	}
	var result SubscribeResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return SubscribeResult{}, fmt.Errorf("pool: decode subscribe result: %w", err)
	}
	return result, nil
}

// Authorize submits worker credentials, returning whether the pool accepted
// them.
func (c *Client) Authorize(ctx context.Context, user, pass string) (bool, error) {
	params, _ := json.Marshal([]string{user, pass})
	raw, err := c.call(ctx, "mining.authorize", params)
	if err != nil {
		return false, err
	}
	var ok bool
	if err := json.Unmarshal(raw, &ok); err != nil {
		return false, fmt.Errorf("pool: decode authorize result: %w", err)
	}
	return ok, nil
}

// Submit reports a 42-nonce proof for jobID and returns whether the pool
// accepted it.
func (c *Client) Submit(ctx context.Context, jobID string, proof [42]uint32) (submitResult, error) {
	params, _ := json.Marshal(submitParams{JobID: jobID, Proof: proof})
	raw, err := c.call(ctx, "mining.submit", params)
	if err != nil {
		return submitResult{}, err
	}
	var result submitResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return submitResult{}, fmt.Errorf("pool: decode submit result: %w", err)
	}
	return result, nil
}

// call sends a request and blocks for its matching response, or until ctx is
// done or the connection closes.
func (c *Client) call(ctx context.Context, method string, params json.RawMessage) (json.RawMessage, error) {
	c.pendingMu.Lock()
	id := c.nextID
	c.nextID++
	ch := make(chan response, 1)
	c.pending[id] = ch
	c.pendingMu.Unlock()

	defer func() {
		c.pendingMu.Lock()
		delete(c.pending, id)
		c.pendingMu.Unlock()
	}()

	req := request{ID: &id, Method: method, Params: params}
	if err := c.writeLine(req); err != nil {
		return nil, err
	}

	select {
	case resp := <-ch:
		if resp.Error != nil {
			return nil, fmt.Errorf("pool: %s: %w", method, resp.Error)
		}
		return resp.Result, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-c.done:
		return nil, fmt.Errorf("pool: connection closed while waiting for %s", method)
	}
}

func (c *Client) writeLine(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("pool: marshal request: %w", err)
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	data = append(data, '\n')
	if _, err := c.writer.Write(data); err != nil {
		return fmt.Errorf("pool: write request: %w", err)
	}
	return c.writer.Flush()
}

// readLoop consumes newline-delimited JSON messages, routing replies to
// their waiting caller and notifications to Jobs.
func (c *Client) readLoop() {
	defer close(c.done)
	defer close(c.Jobs)

	scanner := bufio.NewScanner(c.conn)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var msg response
		if err := json.Unmarshal(line, &msg); err != nil {
			logger.Printf("discarding malformed line: %v", err)
			continue
		}

		if msg.ID != nil {
			c.pendingMu.Lock()
			ch, ok := c.pending[*msg.ID]
			c.pendingMu.Unlock()
			if ok {
				ch <- msg
			}
			continue
		}

		var notify JobNotify
		if err := json.Unmarshal(msg.Result, &notify); err != nil {
			logger.Printf("discarding malformed notify: %v", err)
			continue
		}
		select {
		case c.Jobs <- notify:
		default:
			// A slow consumer loses the stale job rather than stalling the
			// read loop; the next notify supersedes it anyway.
			<-c.Jobs
			c.Jobs <- notify
		}
	}
}

// Close tears down the underlying connection. Safe to call more than once.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		err = c.conn.Close()
	})
	return err
}
