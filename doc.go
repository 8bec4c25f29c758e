// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package jsonval implements a tokenizer for JSON text.
//
// # Scanning
//
// The Scanner type implements a lexical scanner for JSON. Construct a scanner
// from an io.Reader, or from an in-memory view of the input, and call its Next
// method to iterate over the tokens of the input:
//
//	s := jsonval.NewScanner(input)
//	for {
//	   tok, err := s.Next()
//	   if err == io.EOF {
//	      break
//	   } else if err != nil {
//	      log.Fatalf("Scanning failed: %v", err)
//	   }
//	   log.Printf("Next token: %v", tok)
//	}
//
// Structural punctuation ({ } [ ] : ,) is reported as single-character
// tokens. String literals are reported with their escapes already decoded.
// Any other run of characters is reported as a Literal token, and it is up to
// the consumer to decide whether it is a number, a constant, or an error.
//
// A consumer that reads one token too far may push it back with Backup, so
// that the next call to Next reports it again. Only one token may be pending.
//
// # Encodings
//
// By default the bytes of string literals must be valid UTF-8. Use the
// SetEncoding method to declare a different source encoding; string contents
// are then converted from that encoding to UTF-8:
//
//	enc, err := jsonval.LookupEncoding("iso-8859-1")
//	...
//	s.SetEncoding(enc)
//
// # Errors
//
// Lexical and syntactic errors are reported as values of concrete type
// *jsonval.Error, whose Kind field classifies the failure. An error can be
// tested for its kind with errors.Is:
//
//	if errors.Is(err, jsonval.UnclosedString) { ... }
//
// The ast package builds values from a Tokenizer, and the output package
// renders values back to text.
package jsonval
