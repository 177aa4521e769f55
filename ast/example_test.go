// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package ast_test

import (
	"fmt"
	"log"
	"os"

	"github.com/creachadair/toon/ast"
)

func ExampleParseString() {
	root, err := ast.ParseString(`context:
  task: Our favorite hikes together
hikes[2]{id,name,distanceKm}:
  1,Blue Lake Trail,7.5
  2,Ridge Overlook,9.2
`)
	if err != nil {
		log.Fatalf("Parse: %v", err)
	}
	task, _ := ast.AsString(ast.Get(root, "context.task"))
	fmt.Println(task)

	hikes := ast.Get(root, "hikes")
	for i := range ast.Len(hikes) {
		name, _ := ast.AsString(ast.Get(ast.At(hikes, i), "name"))
		fmt.Printf("%d: %s (%.1f km)\n", i, name, ast.AsFloat(ast.Get(ast.At(hikes, i), "distanceKm")))
	}
	// Output:
	// Our favorite hikes together
	// 0: Blue Lake Trail (7.5 km)
	// 1: Ridge Overlook (9.2 km)
}

func ExamplePath() {
	root, err := ast.ParseString("users[2]{id,name}:\n  1,Alice\n  2,Bob\n")
	if err != nil {
		log.Fatalf("Parse: %v", err)
	}
	v, err := ast.Path(root, "users", -1, "name")
	if err != nil {
		log.Fatalf("Path: %v", err)
	}
	fmt.Println(v.JSON())
	// Output:
	// "Bob"
}

func ExampleFormat() {
	obj := ast.Object{
		ast.Field("id", 7),
		ast.Field("tags", []string{"a", "b"}),
	}
	ast.Format(os.Stdout, obj)
	// Output:
	// {
	//   "id": 7,
	//   "tags": [
	//     "a",
	//     "b"
	//   ]
	// }
}
