// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package query_test

import (
	"fmt"
	"log"

	"github.com/creachadair/toon/ast"
	"github.com/creachadair/toon/query"
)

func mustParse(s string) ast.Object {
	root, err := ast.ParseString(s)
	if err != nil {
		log.Fatalf("Parse: %v", err)
	}
	return root
}

func Example_small() {
	root := mustParse(`items[2]{a,b}:
  1,2
  3,4
flags:
  ok: true
`)
	v, err := query.Eval(root, query.Path("items", 1, "b"))
	if err != nil {
		log.Fatalf("Eval: %v", err)
	}
	fmt.Println(v.JSON())
	// Output:
	// 4
}

func Example_medium() {
	root := mustParse(`plaintiff: Inigo Montoya
complaint:
  defendant: you
  action: killed
  target: Individual 1
requestedRelief[3]: die,pay punitive damages,pay attorney fees
relatedPersons[1]{name,id,rel}:
  Individual 1,father,plaintiff
`)

	v, err := query.Eval(root, query.Object{
		"name": query.Path("plaintiff"),
		"act": query.List{
			query.Path("complaint", "defendant"),
			query.Path("complaint", "action"),
			query.Value("my"),
			query.Path("relatedPersons", 0, "id"),
		},
		"req": query.Path("requestedRelief", 0),
	})
	if err != nil {
		log.Fatalf("Eval: %v", err)
	}
	obj := v.(ast.Object)
	fmt.Printf("Hello, my name is: %s\n", obj.Find("name").Value)
	fmt.Println(obj.Find("act").Value.JSON())
	fmt.Printf("Prepare to %s\n", obj.Find("req").Value)
	// Output:
	// Hello, my name is: Inigo Montoya
	// ["you","killed","my","father"]
	// Prepare to die
}

func ExampleWhere() {
	root := mustParse(`users[3]{id,name,active}:
  1,Alice,true
  2,Bob,false
  3,Charlie,true
`)
	p, err := query.Compile(`active && id > 1`)
	if err != nil {
		log.Fatalf("Compile: %v", err)
	}
	v, err := query.Eval(root, query.Path("users", query.Where(p), query.Each("name")))
	if err != nil {
		log.Fatalf("Eval: %v", err)
	}
	fmt.Println(v.JSON())
	// Output:
	// ["Charlie"]
}
