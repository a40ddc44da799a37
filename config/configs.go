package config

import (
	"encoding/xml"
	"fmt"
	"os"
)

var MainRouter string
var DSN string
var DBType string
var SqlitePath string
var Download string
var MainConfig Config

type Config struct {
	XMLName    xml.Name `xml:"config"`
	MainRouter string   `xml:"MainRouter"`
	DBType     string   `xml:"dbtype"`
	SqlitePath string   `xml:"sqlitepath"`
	Dbname     string   `xml:"dbname"`
	Host       string   `xml:"host"`
	Port       string   `xml:"port"`
	Username   string   `xml:"user"`
	Password   string   `xml:"password"`
	Download   string   `xml:"download"`
}

func init() {

	MainRouter = ":8426"
	DBType = "sqlite"
	Download = "./Caches"

	xmlFile, err := os.Open("config.xml")
	if err != nil {
		fmt.Println("Error  opening  file:", err)
		return
	}
	defer xmlFile.Close()

	xmlDecoder := xml.NewDecoder(xmlFile)
	err = xmlDecoder.Decode(&MainConfig)
	if err != nil {
		fmt.Println("Error  decoding  XML:", err)
		return
	}
	if MainConfig.MainRouter != "" {
		MainRouter = MainConfig.MainRouter
	}
	if MainConfig.DBType != "" {
		DBType = MainConfig.DBType
	}
	SqlitePath = MainConfig.SqlitePath
	if MainConfig.Download != "" {
		Download = MainConfig.Download
	}

	DSN = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC", MainConfig.Host, MainConfig.Username, MainConfig.Password, MainConfig.Dbname, MainConfig.Port)

}
