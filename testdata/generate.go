package main

import (
	"log"
	"os"

	"github.com/parquet-go/parquet-go"
)

type Sale struct {
	Region  string  `parquet:"region"`
	Product string  `parquet:"product"`
	Year    int64   `parquet:"year"`
	Amount  float64 `parquet:"amount"`
	Units   int32   `parquet:"units"`
	Online  bool    `parquet:"online"`
}

func main() {
	sales := []Sale{
		{Region: "north", Product: "widget", Year: 2023, Amount: 120.5, Units: 12, Online: true},
		{Region: "north", Product: "gadget", Year: 2023, Amount: 75.0, Units: 5, Online: false},
		{Region: "south", Product: "widget", Year: 2023, Amount: 200.0, Units: 20, Online: true},
		{Region: "south", Product: "gadget", Year: 2024, Amount: 310.4, Units: 31, Online: true},
		{Region: "west", Product: "widget", Year: 2024, Amount: 99.9, Units: 9, Online: false},
	}

	file, err := os.Create("sales.parquet")
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[Sale](file)
	defer writer.Close()

	if _, err := writer.Write(sales); err != nil {
		log.Fatal(err)
	}

	log.Println("Generated sales.parquet with 5 rows")
}
