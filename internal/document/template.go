package document

// Legacy page template. The stylesheet is fixed across every document.
const (
	htmlHeader = `
<!DOCTYPE html><html lang='ar' dir='rtl'><head><meta content='text/html; charset=UTF-8' http-equiv='Content-Type'><style>@media all
{

body
{
direction: rtl;
background-color: #D4D4D4;
line-height: 2;
font: bold 18pt "Traditional Naskh";
text-align: center;
}

hr {clear:both; color: #221122;}
p {margin: 0px;}
.title {color: #800000;}
.footnote, .PageHead {font: bold 16pt "Traditional Naskh"; color: #464646;}
.PageHead {font-style: italic}
.PartName {float:right;}
.PageNumber {float:left;}

.Main {text-align:right; margin: 0 auto; max-width: 780px;}

.PageText
{
text-align: justify;
background-color: #EFEBD6;
margin-top: 20px;
padding: 90px 90px 90px 90px;
border: solid 1px gray;
border-right-width: 4px;
border-bottom-width: 4px;
}

Table
{
background-color: #800000;
width: 90%;
}

TD {background-color: #fefbe7; padding: 0px 10px 0px 10px; vertical-align:middle;} 
TH {background-color: #e3e1cf; padding: 0px 10px 0px 10px; text-align:center; vertical-align:middle;}
}

@media print
{
.Main {width:650px;}
.PageText

{
page-break-before:always;
border-width:0px;
margin:0px;
padding:1px;
}

}
</style><title>`
	htmlTitleEnd = "</title></head><body><div class='Main'>\n"
	htmlFooter   = "</div></body></html>"
)
