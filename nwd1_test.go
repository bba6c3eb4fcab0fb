package nwd1_test

import (
	"bytes"
	"fmt"
	"io"

	nwd1 "github.com/nwd-labs/nwd1"
)

func ExampleSendFrame() {
	var stream bytes.Buffer
	codec := nwd1.NewBinaryCodec()

	err := nwd1.SendFrame(&stream, codec, &nwd1.Frame{
		ID:      nwd1.MakeNetID(1, 7, 42),
		Kind:    1,
		Ver:     1,
		Payload: []byte("ping"),
	})
	if err != nil {
		panic(err)
	}

	f, err := nwd1.RecvFrame(&stream, codec)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%s %s\n", f.ID, f.Payload)

	if _, err := nwd1.RecvFrame(&stream, codec); err == io.EOF {
		fmt.Println("clean end of stream")
	}
	// Output:
	// 1/7/42 ping
	// clean end of stream
}

func ExampleNewStream() {
	var duplex bytes.Buffer
	s := nwd1.NewStream(&duplex)

	if err := s.Send(&nwd1.Frame{Kind: 2, Ver: 1, Payload: []byte("pong")}); err != nil {
		panic(err)
	}

	f, err := s.Recv()
	if err != nil {
		panic(err)
	}
	fmt.Println(string(f.Payload))
	// Output: pong
}
