package main

// Example command that builds a split from in-memory columns, draws a few
// epochs of batches and converts them into gomlx tensors.
//
// Usage:
//   go run ./datasets/example

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/Noofbiz/seqBowl/datasets"
	"github.com/Noofbiz/seqBowl/vocab"
)

func main() {
	tokens := []string{"<pad>", "int", "main", "(", ")", "{", "}", "return", "0", ";"}
	table, err := vocab.FromTokens(tokens, len(tokens))
	if err != nil {
		log.Fatalf("failed to build vocabulary: %v", err)
	}

	programs := [][]string{
		{"int", "main", "(", ")", "{", "return", "0", ";", "}"},
		{"int", "main", "(", ")", "{", "}"},
		{"return", "0", ";"},
		{"int", "x", ";"}, // "x" is out of vocabulary
		{"{", "}"},
		{"main", "(", ")", ";"},
	}
	cols := datasets.Columns{Raw: programs}
	for i, p := range programs {
		cols.Tokens = append(cols.Tokens, table.EncodeAll(p))
		cols.Labels = append(cols.Labels, i%2)
	}

	ds, err := datasets.NewSeqDataset("example", cols, table, datasets.Options{
		MaxLen:    6,
		Precision: datasets.Standard,
		Rand:      rand.New(rand.NewSource(7)),
	})
	if err != nil {
		log.Fatalf("failed to build dataset: %v", err)
	}
	fmt.Printf("Dataset %q: %d examples, max_len=%d\n", ds.Name(), ds.Len(), ds.MaxLen())

	// Four examples per batch out of six: each call after the first finds
	// only two left, drops them and starts a new epoch.
	for i := range 4 {
		b, err := ds.NextBatch(4)
		if err != nil {
			log.Fatalf("failed to draw batch: %v", err)
		}
		fmt.Printf("Batch %d: ids=%v new_epoch=%v remaining=%d\n", i, b.IDs, b.NewEpoch, ds.RemainingInEpoch())
		for j, seq := range ds.Decode(b.Tokens, b.Lengths) {
			fmt.Printf("  label=%d %v\n", b.Labels[j], seq)
		}

		inputs, labels, err := b.ToGomlxTensors()
		if err != nil {
			log.Fatalf("failed to convert batch: %v", err)
		}
		fmt.Printf("  tensors: tokens=%v lengths=%v mask=%v labels=%v\n",
			inputs[0].Shape(), inputs[1].Shape(), inputs[2].Shape(), labels.Shape())
	}
}
