package dataprep_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/nao1215/dataprep"
)

func ExampleHeadersToSnakeCase() {
	tbl, err := dataprep.NewTable("students",
		dataprep.NewIntColumn("Student Number", dataprep.DTypeInt64, []int64{123456, 123457}, nil),
		dataprep.NewStringColumn("Fee Region", []string{"Scot", "rUK"}, nil),
	)
	if err != nil {
		log.Fatal(err)
	}

	dataprep.HeadersToSnakeCase(tbl)
	dataprep.ValuesToLowercase(tbl)
	dataprep.OptimizeNumericTypes(tbl)

	fmt.Println(tbl.Header())
	fmt.Println(tbl.Column(0).DType(), tbl.Column(1).Strings())
	// Output:
	// [student_number fee_region]
	// int32 [scot ruk]
}

func ExampleUnpack() {
	rawDir, err := os.MkdirTemp("", "raw")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(rawDir)

	outDir, err := os.MkdirTemp("", "clean")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(outDir)

	data := "Student Number,Fee Region\n123456, scot \n123457,rUK\n"
	if err := os.WriteFile(filepath.Join(rawDir, "cohort.csv"), []byte(data), 0o600); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	coll, err := dataprep.ReadAllCSV(ctx, rawDir)
	if err != nil {
		log.Fatal(err)
	}

	ns := dataprep.NewNamespace()
	if err := dataprep.Unpack(ctx, coll, ns); err != nil {
		log.Fatal(err)
	}
	ns.Apply(func(t *dataprep.Table) {
		dataprep.HeadersToSnakeCase(t)
		dataprep.ValuesStripWhitespace(t)
	})

	if err := dataprep.WriteCSV(ns, outDir); err != nil {
		log.Fatal(err)
	}

	out, err := os.ReadFile(filepath.Join(outDir, "processed_cohort.csv"))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Print(string(out))
	// Output:
	// student_number,fee_region
	// 123456,scot
	// 123457,rUK
}
