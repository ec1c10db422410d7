package plugin

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestAccessor_ConcurrentFirstUseBuildsOnce(t *testing.T) {
	var built atomic.Int32
	release := make(chan struct{})
	acc := NewAccessor(func(context.Context, Credentials) (Client, error) {
		built.Add(1)
		<-release
		return &fakeClient{}, nil
	}, Credentials{})

	const callers = 16
	results := make([]Client, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := acc.Client(context.Background())
			if err != nil {
				t.Errorf("caller %d: %v", i, err)
				return
			}
			results[i] = c
		}(i)
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	if n := built.Load(); n != 1 {
		t.Fatalf("expected 1 construction, got %d", n)
	}
	for i := 1; i < callers; i++ {
		if results[i] != results[0] {
			t.Fatalf("caller %d got a different client", i)
		}
	}
}

func TestAccessor_SequentialCallsReuseClient(t *testing.T) {
	var built int
	acc := NewAccessor(func(context.Context, Credentials) (Client, error) {
		built++
		return &fakeClient{}, nil
	}, Credentials{})

	first, err := acc.Client(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 5; i++ {
		c, err := acc.Client(context.Background())
		if err != nil || c != first {
			t.Fatalf("call %d: expected cached client, got %v (%v)", i, c, err)
		}
	}
	if built != 1 {
		t.Errorf("expected 1 construction, got %d", built)
	}
}

func TestAccessor_FailureIsNotCached(t *testing.T) {
	boom := errors.New("boom")
	var built int
	acc := NewAccessor(func(context.Context, Credentials) (Client, error) {
		built++
		if built == 1 {
			return nil, boom
		}
		return &fakeClient{}, nil
	}, Credentials{})

	if _, err := acc.Client(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	c, err := acc.Client(context.Background())
	if err != nil || c == nil {
		t.Fatalf("expected retry to succeed, got %v (%v)", c, err)
	}
	if built != 2 {
		t.Errorf("expected 2 constructions, got %d", built)
	}
}

func TestAccessor_NilClient(t *testing.T) {
	acc := NewAccessor(func(context.Context, Credentials) (Client, error) {
		return nil, nil
	}, Credentials{})

	if _, err := acc.Client(context.Background()); !errors.Is(err, errNilClient) {
		t.Fatalf("expected errNilClient, got %v", err)
	}
}

func TestAccessor_PassesCredentials(t *testing.T) {
	cases := []Credentials{
		{},
		{EVMPrivateKey: "0xabc"},
		{SolanaPrivateKey: "sol"},
		{EVMPrivateKey: "0xabc", SolanaPrivateKey: "sol"},
	}
	for _, want := range cases {
		t.Setenv(EnvEVMPrivateKey, want.EVMPrivateKey)
		t.Setenv(EnvSolanaPrivateKey, want.SolanaPrivateKey)

		var got Credentials
		acc := NewAccessor(func(_ context.Context, creds Credentials) (Client, error) {
			got = creds
			return &fakeClient{}, nil
		}, CredentialsFromEnv())

		if _, err := acc.Client(context.Background()); err != nil {
			t.Fatalf("%+v: unexpected error: %v", want, err)
		}
		if got != want {
			t.Errorf("credentials = %+v, want %+v", got, want)
		}
	}
}

func TestPreloaded(t *testing.T) {
	c := &fakeClient{}
	got, err := Preloaded(c).Client(context.Background())
	if err != nil || got != c {
		t.Fatalf("expected preloaded client, got %v (%v)", got, err)
	}
}
